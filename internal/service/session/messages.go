package session

// User visible system messages.
const (
	msgBrainComm       = "Communication error with the brain."
	msgExplorerComm    = "Communication error with the web explorer."
	msgMemoryComm      = "Communication error with the memory system."
	msgBrainConnection = "Connection error to the brain."

	msgExploring   = "Exploring the web..."
	msgExploreDone = "Exploration finished! %d pages explored."
	msgErrorPrefix = "Error: "
	MsgNoMemories  = "No memories found."
)

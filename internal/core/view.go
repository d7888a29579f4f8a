package core

// View receives everything a session wants to show the user.
// Implementations must be safe for use from multiple goroutines.
type View interface {
	AddUserMessage(text string)
	AddAssistantMessage(id, text string)
	AddSystemMessage(text string)
	MarkFeedback(id string, positive bool)
	ShowMemories(items []RenderedMemory)
	HideMemories()
	ShowVisualization(url string)
	HideVisualization()
	UpdateStats(stats Stats)
}

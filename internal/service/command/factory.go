package command

import (
	"github.com/sandevgo/brainchat/internal/core"
)

func NewCommands(s Session) []core.Command {
	cmds := []core.Command{
		NewExploreCommand(s),
		NewAddURLCommand(s),
		NewSearchCommand(s),
		NewVisualizeCommand(s),
		NewSaveCommand(s),
		NewStatsCommand(s),
		NewFeedbackCommand(s, true),
		NewFeedbackCommand(s, false),
	}
	return append(cmds, NewHelpCommand(cmds))
}

// NewSessionRouter builds a router wired to one chat session.
func NewSessionRouter(s Session) *Router {
	return New(NewCommands(s))
}

package command

import (
	"context"
	"strings"

	"github.com/sandevgo/brainchat/internal/core"
)

type SearchCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewSearchCommand(s Session) core.Command {
	return &SearchCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *SearchCommand) Name() string {
	return "search"
}

func (c *SearchCommand) Description() string {
	return "Search the brain memory"
}

func (c *SearchCommand) Execute(ctx context.Context, args []string) (string, error) {
	if !c.session.SearchMemory(ctx, strings.Join(args, " ")) {
		return c.formatter.Combine(
			c.formatter.Usage("/search <query>"),
			c.formatter.Examples([]string{"/search cats", "/search capital of France"}),
		), nil
	}
	return "", nil
}

type VisualizeCommand struct {
	session Session
}

func NewVisualizeCommand(s Session) core.Command {
	return &VisualizeCommand{session: s}
}

func (c *VisualizeCommand) Name() string {
	return "visualize"
}

func (c *VisualizeCommand) Description() string {
	return "Render the memory network"
}

func (c *VisualizeCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.session.VisualizeMemory(ctx)
	return "", nil
}

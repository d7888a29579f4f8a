package command

import (
	"context"
	"strings"

	"github.com/sandevgo/brainchat/internal/core"
)

type ExploreCommand struct {
	session Session
}

func NewExploreCommand(s Session) core.Command {
	return &ExploreCommand{session: s}
}

func (c *ExploreCommand) Name() string {
	return "explore"
}

func (c *ExploreCommand) Description() string {
	return "Let the brain explore the web (default 3 pages)"
}

func (c *ExploreCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.session.ExploreWeb(ctx, strings.Join(args, " "))
	return "", nil
}

type AddURLCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewAddURLCommand(s Session) core.Command {
	return &AddURLCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *AddURLCommand) Name() string {
	return "url"
}

func (c *AddURLCommand) Description() string {
	return "Add a URL to the exploration queue"
}

func (c *AddURLCommand) Execute(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return c.formatter.Combine(
			c.formatter.Usage("/url <url>"),
			c.formatter.Examples([]string{"/url https://en.wikipedia.org/wiki/Brain"}),
		), nil
	}
	c.session.AddURL(ctx, args[0])
	return "", nil
}

package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/brainchat/internal/core"
)

type HelpCommand struct {
	commands  []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(commands []core.Command) core.Command {
	return &HelpCommand{commands: commands, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "List available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, args []string) (string, error) {
	cmds := append([]core.Command{c}, c.commands...)
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })

	items := make([]string, len(cmds))
	for i, cmd := range cmds {
		items[i] = fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description())
	}

	return c.formatter.Combine(
		c.formatter.Heading("Commands"),
		c.formatter.List(items),
		c.formatter.Tip("anything that does not start with / is sent to the brain"),
	), nil
}

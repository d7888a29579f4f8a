package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/brainchat/internal/core"
)

type FeedbackCommand struct {
	session  Session
	positive bool
}

func NewFeedbackCommand(s Session, positive bool) core.Command {
	return &FeedbackCommand{session: s, positive: positive}
}

func (c *FeedbackCommand) Name() string {
	if c.positive {
		return "good"
	}
	return "bad"
}

func (c *FeedbackCommand) Description() string {
	if c.positive {
		return "Mark a reply as good (latest when no id)"
	}
	return "Mark a reply as bad (latest when no id)"
}

func (c *FeedbackCommand) Execute(ctx context.Context, args []string) (string, error) {
	id, ok := c.session.LatestReplyID()
	if len(args) > 0 {
		id, ok = args[0], true
	}
	if !ok {
		return "", errors.New("no brain reply to rate yet")
	}

	if !c.session.SendFeedback(ctx, id, c.positive) {
		return "", fmt.Errorf("unknown message id %q", id)
	}
	return "", nil
}

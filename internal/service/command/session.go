package command

import (
	"context"

	"github.com/sandevgo/brainchat/internal/core"
)

// Session is the part of a chat session the commands drive.
type Session interface {
	ExploreWeb(ctx context.Context, pagesField string) int
	AddURL(ctx context.Context, field string) bool
	SearchMemory(ctx context.Context, query string) bool
	VisualizeMemory(ctx context.Context)
	SaveState(ctx context.Context)
	RefreshStats(ctx context.Context)
	Stats() (core.Stats, bool)
	SendFeedback(ctx context.Context, id string, positive bool) bool
	LatestReplyID() (string, bool)
}

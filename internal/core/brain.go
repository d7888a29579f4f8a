package core

import "context"

// Brain is the remote service every front-end talks to.
type Brain interface {
	Status(ctx context.Context) (Stats, error)
	Interact(ctx context.Context, message string) (Interaction, error)
	Feedback(ctx context.Context, fb Feedback) (string, error)
	ExploreWeb(ctx context.Context, maxPages int) (int, error)
	AddURL(ctx context.Context, url string) (string, error)
	RetrieveMemory(ctx context.Context, query string, topK int) ([]MemoryItem, error)
	VisualizeMemory(ctx context.Context) (string, error)
	SaveBrain(ctx context.Context) (string, error)
}

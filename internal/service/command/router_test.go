package command

import (
	"context"
	"testing"

	"github.com/sandevgo/brainchat/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	explored   []string
	urls       []string
	queries    []string
	visualized int
	saved      int
	refreshed  int
	stats      *core.Stats
	latest     string
	known      map[string]bool
	feedback   []string
}

func (f *fakeSession) ExploreWeb(ctx context.Context, pagesField string) int {
	f.explored = append(f.explored, pagesField)
	return 3
}

func (f *fakeSession) AddURL(ctx context.Context, field string) bool {
	f.urls = append(f.urls, field)
	return true
}

func (f *fakeSession) SearchMemory(ctx context.Context, query string) bool {
	if query == "" {
		return false
	}
	f.queries = append(f.queries, query)
	return true
}

func (f *fakeSession) VisualizeMemory(ctx context.Context) { f.visualized++ }

func (f *fakeSession) SaveState(ctx context.Context) { f.saved++ }

func (f *fakeSession) RefreshStats(ctx context.Context) { f.refreshed++ }

func (f *fakeSession) Stats() (core.Stats, bool) {
	if f.stats == nil {
		return core.Stats{}, false
	}
	return *f.stats, true
}

func (f *fakeSession) SendFeedback(ctx context.Context, id string, positive bool) bool {
	if !f.known[id] {
		return false
	}
	mark := "-"
	if positive {
		mark = "+"
	}
	f.feedback = append(f.feedback, id+mark)
	return true
}

func (f *fakeSession) LatestReplyID() (string, bool) {
	return f.latest, f.latest != ""
}

func TestRouter_NonCommandPassesThrough(t *testing.T) {
	r := NewSessionRouter(&fakeSession{})

	out, handled := r.Execute(context.Background(), "hello brain")
	assert.False(t, handled)
	assert.Empty(t, out)
}

func TestRouter_UnknownCommand(t *testing.T) {
	r := NewSessionRouter(&fakeSession{})

	out, handled := r.Execute(context.Background(), "/dance now")
	assert.True(t, handled)
	assert.Equal(t, "Unknown command: /dance", out)
}

func TestRouter_Dispatch(t *testing.T) {
	s := &fakeSession{}
	r := NewSessionRouter(s)
	ctx := context.Background()

	r.Execute(ctx, "/explore 5")
	r.Execute(ctx, "/explore")
	r.Execute(ctx, "/url https://example.com")
	r.Execute(ctx, "/search capital of France")
	r.Execute(ctx, "/visualize")
	r.Execute(ctx, "/save@brain_bot")

	assert.Equal(t, []string{"5", ""}, s.explored)
	assert.Equal(t, []string{"https://example.com"}, s.urls)
	assert.Equal(t, []string{"capital of France"}, s.queries)
	assert.Equal(t, 1, s.visualized)
	assert.Equal(t, 1, s.saved)
}

func TestRouter_UsageWhenArgumentsMissing(t *testing.T) {
	s := &fakeSession{}
	r := NewSessionRouter(s)

	out, _ := r.Execute(context.Background(), "/search")
	assert.Contains(t, out, "/search <query>")
	assert.Empty(t, s.queries)

	out, _ = r.Execute(context.Background(), "/url")
	assert.Contains(t, out, "/url <url>")
	assert.Empty(t, s.urls)
}

func TestRouter_Feedback(t *testing.T) {
	s := &fakeSession{known: map[string]bool{"100": true, "200": true}}
	r := NewSessionRouter(s)
	ctx := context.Background()

	out, _ := r.Execute(ctx, "/good")
	assert.Equal(t, "Error: no brain reply to rate yet", out)

	s.latest = "200"
	out, _ = r.Execute(ctx, "/good")
	assert.Empty(t, out)

	out, _ = r.Execute(ctx, "/bad 100")
	assert.Empty(t, out)

	out, _ = r.Execute(ctx, "/bad 999")
	assert.Equal(t, `Error: unknown message id "999"`, out)

	assert.Equal(t, []string{"200+", "100-"}, s.feedback)
}

func TestRouter_Stats(t *testing.T) {
	s := &fakeSession{}
	r := NewSessionRouter(s)

	out, _ := r.Execute(context.Background(), "/stats")
	assert.Equal(t, "Error: brain statistics are not available", out)

	s.stats = &core.Stats{
		NeuralNetwork: core.NeuralStats{ExperienceCounter: 12, CuriosityFactor: 0.5},
		Learning:      core.LearningStats{ConceptsCount: 4},
		WebExplorer:   &core.ExplorerStats{URLsInQueue: 2},
	}
	out, _ = r.Execute(context.Background(), "/stats")
	assert.Contains(t, out, "**Experiences**  ›  `12`")
	assert.Contains(t, out, "**Curiosity**  ›  `0.50`")
	assert.Contains(t, out, "**URLs queued**  ›  `2`")
	assert.Equal(t, 2, s.refreshed)
}

func TestRouter_HelpListsEveryCommand(t *testing.T) {
	r := NewSessionRouter(&fakeSession{})

	out, handled := r.Execute(context.Background(), "/help")
	require.True(t, handled)

	for _, cmd := range r.ListCommands() {
		assert.Contains(t, out, "`/"+cmd.Name()+"`")
	}
	assert.Len(t, r.ListCommands(), 9)
}

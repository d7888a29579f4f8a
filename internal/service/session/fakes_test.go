package session

import (
	"context"
	"sync"

	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/core"
)

var testConfig = &config.BrainConfig{MemoryTopK: 5, DefaultPages: 3}

// fakeBrain records every call and answers from the configured funcs.
type fakeBrain struct {
	mu    sync.Mutex
	calls []string

	interact  func(message string) (core.Interaction, error)
	status    func() (core.Stats, error)
	feedback  func(fb core.Feedback) (string, error)
	explore   func(pages int) (int, error)
	addURL    func(url string) (string, error)
	retrieve  func(query string, topK int) ([]core.MemoryItem, error)
	visualize func() (string, error)
	save      func() (string, error)

	lastFeedback core.Feedback
	lastPages    int
	lastTopK     int
}

func (f *fakeBrain) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBrain) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeBrain) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeBrain) Status(ctx context.Context) (core.Stats, error) {
	f.record("status")
	if f.status != nil {
		return f.status()
	}
	return core.Stats{}, nil
}

func (f *fakeBrain) Interact(ctx context.Context, message string) (core.Interaction, error) {
	f.record("interact")
	if f.interact != nil {
		return f.interact(message)
	}
	return core.Interaction{Input: message, Response: "echo: " + message, Timestamp: "2024-05-01T10:00:00"}, nil
}

func (f *fakeBrain) Feedback(ctx context.Context, fb core.Feedback) (string, error) {
	f.record("feedback")
	f.mu.Lock()
	f.lastFeedback = fb
	f.mu.Unlock()
	if f.feedback != nil {
		return f.feedback(fb)
	}
	return "Feedback saved", nil
}

func (f *fakeBrain) ExploreWeb(ctx context.Context, maxPages int) (int, error) {
	f.record("explore_web")
	f.mu.Lock()
	f.lastPages = maxPages
	f.mu.Unlock()
	if f.explore != nil {
		return f.explore(maxPages)
	}
	return maxPages, nil
}

func (f *fakeBrain) AddURL(ctx context.Context, url string) (string, error) {
	f.record("add_url")
	if f.addURL != nil {
		return f.addURL(url)
	}
	return "URL added", nil
}

func (f *fakeBrain) RetrieveMemory(ctx context.Context, query string, topK int) ([]core.MemoryItem, error) {
	f.record("retrieve_memory")
	f.mu.Lock()
	f.lastTopK = topK
	f.mu.Unlock()
	if f.retrieve != nil {
		return f.retrieve(query, topK)
	}
	return []core.MemoryItem{}, nil
}

func (f *fakeBrain) VisualizeMemory(ctx context.Context) (string, error) {
	f.record("visualize_memory")
	if f.visualize != nil {
		return f.visualize()
	}
	return "/static/visualizations/memory_network_1.png", nil
}

func (f *fakeBrain) SaveBrain(ctx context.Context) (string, error) {
	f.record("save_brain")
	if f.save != nil {
		return f.save()
	}
	return "Brain saved", nil
}

type viewEvent struct {
	Kind     string
	ID       string
	Text     string
	Positive bool
	Memories []core.RenderedMemory
	Stats    core.Stats
}

// recordingView keeps every call in order.
type recordingView struct {
	mu     sync.Mutex
	events []viewEvent
}

func (v *recordingView) push(e viewEvent) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, e)
}

func (v *recordingView) Events() []viewEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]viewEvent(nil), v.events...)
}

func (v *recordingView) ofKind(kind string) []viewEvent {
	var out []viewEvent
	for _, e := range v.Events() {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (v *recordingView) AddUserMessage(text string) {
	v.push(viewEvent{Kind: "user", Text: text})
}

func (v *recordingView) AddAssistantMessage(id, text string) {
	v.push(viewEvent{Kind: "assistant", ID: id, Text: text})
}

func (v *recordingView) AddSystemMessage(text string) {
	v.push(viewEvent{Kind: "system", Text: text})
}

func (v *recordingView) MarkFeedback(id string, positive bool) {
	v.push(viewEvent{Kind: "mark", ID: id, Positive: positive})
}

func (v *recordingView) ShowMemories(items []core.RenderedMemory) {
	v.push(viewEvent{Kind: "memories", Memories: items})
}

func (v *recordingView) HideMemories() {
	v.push(viewEvent{Kind: "hide_memories"})
}

func (v *recordingView) ShowVisualization(url string) {
	v.push(viewEvent{Kind: "visualization", Text: url})
}

func (v *recordingView) HideVisualization() {
	v.push(viewEvent{Kind: "hide_visualization"})
}

func (v *recordingView) UpdateStats(stats core.Stats) {
	v.push(viewEvent{Kind: "stats", Stats: stats})
}

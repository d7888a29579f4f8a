package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/brainchat/internal/core"
)

type (
	userEvent              string
	systemEvent            string
	visualizationEvent     string
	hideVisualizationEvent struct{}
	hideMemoriesEvent      struct{}
	memoriesEvent          []core.RenderedMemory
	statsEvent             core.Stats
	assistantEvent         struct{ id, text string }
	feedbackEvent          struct {
		id       string
		positive bool
	}
)

var _ core.View = (*EventView)(nil)

// EventView turns controller callbacks into Bubble Tea messages. The
// controller calls it from worker goroutines; the program drains it with
// Wait.
type EventView struct {
	ch   chan tea.Msg
	done chan struct{}
	once sync.Once
}

func NewEventView() *EventView {
	return &EventView{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

// Wait returns a command that delivers the next event. Re-issue it after
// every event.
func (v *EventView) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-v.ch:
			return msg
		case <-v.done:
			return nil
		}
	}
}

// Close releases pending and future emitters.
func (v *EventView) Close() {
	v.once.Do(func() { close(v.done) })
}

func (v *EventView) emit(msg tea.Msg) {
	select {
	case v.ch <- msg:
	case <-v.done:
	}
}

func (v *EventView) AddUserMessage(text string) { v.emit(userEvent(text)) }

func (v *EventView) AddAssistantMessage(id, text string) {
	v.emit(assistantEvent{id: id, text: text})
}

func (v *EventView) AddSystemMessage(text string) { v.emit(systemEvent(text)) }

func (v *EventView) MarkFeedback(id string, positive bool) {
	v.emit(feedbackEvent{id: id, positive: positive})
}

func (v *EventView) ShowMemories(items []core.RenderedMemory) { v.emit(memoriesEvent(items)) }

func (v *EventView) HideMemories() { v.emit(hideMemoriesEvent{}) }

func (v *EventView) ShowVisualization(url string) { v.emit(visualizationEvent(url)) }

func (v *EventView) HideVisualization() { v.emit(hideVisualizationEvent{}) }

func (v *EventView) UpdateStats(stats core.Stats) { v.emit(statsEvent(stats)) }

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/sandevgo/brainchat/internal/core"
)

const (
	headerHeight = 2
	inputHeight  = 3
	footerHeight = 1
)

// Controller is the chat session the model drives.
type Controller interface {
	SendMessage(ctx context.Context, text string) bool
	SendFeedback(ctx context.Context, id string, positive bool) bool
	LatestReplyID() (string, bool)
	VisualizeMemory(ctx context.Context)
	CloseVisualization() bool
	CloseMemories()
	SaveState(ctx context.Context)
}

type entryKind int

const (
	entryUser entryKind = iota
	entryBrain
	entrySystem
	entryCommand
)

type entry struct {
	kind   entryKind
	id     string
	text   string
	rating int
}

// opDoneMsg ends one background controller call. output carries a slash
// command reply.
type opDoneMsg struct {
	output string
}

type Model struct {
	ctx    context.Context
	ctrl   Controller
	router core.CmdRouter
	events *EventView

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	style    string

	history      []entry
	memories     []core.RenderedMemory
	memoriesOpen bool
	modalURL     string
	stats        *core.Stats
	busy         int

	width  int
	height int
}

type ModelOption func(*Model)

// WithGlamourStyle selects the markdown theme (dark, light, notty).
func WithGlamourStyle(name string) ModelOption {
	return func(m *Model) {
		m.style = name
	}
}

func NewModel(ctx context.Context, ctrl Controller, router core.CmdRouter, events *EventView, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message... (/help for commands)"
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = brainStyle

	vp := viewport.New(80, 20)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
	}

	m := Model{
		ctx:      ctx,
		ctrl:     ctrl,
		router:   router,
		events:   events,
		input:    ti,
		viewport: vp,
		spinner:  sp,
		style:    styles.NoTTYStyle,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.renderer = newRenderer(m.style, 76)
	return m
}

func newRenderer(style string, wrap int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.events.Wait())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		if msg.String() == "pgup" || msg.String() == "pgdown" {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.modalURL != "" {
			if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && !m.insideModal(msg.X, msg.Y) {
				return m, m.closeVisualization()
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		if m.busy == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case opDoneMsg:
		if m.busy > 0 {
			m.busy--
		}
		if msg.output != "" {
			m.push(entry{kind: entryCommand, text: msg.output})
		}
		return m, nil

	case userEvent:
		m.push(entry{kind: entryUser, text: string(msg)})
	case assistantEvent:
		m.push(entry{kind: entryBrain, id: msg.id, text: msg.text})
	case systemEvent:
		m.push(entry{kind: entrySystem, text: string(msg)})
	case feedbackEvent:
		m.markFeedback(msg.id, msg.positive)
	case memoriesEvent:
		m.memories = msg
		m.memoriesOpen = true
		m.layout()
	case hideMemoriesEvent:
		m.memoriesOpen = false
		m.layout()
	case visualizationEvent:
		m.modalURL = string(msg)
	case hideVisualizationEvent:
		m.modalURL = ""
	case statsEvent:
		stats := core.Stats(msg)
		m.stats = &stats
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// View events arrive one at a time; ask for the next one.
	return m, m.events.Wait()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if m.modalURL != "" {
			return m.closeVisualization(), true
		}
		if m.memoriesOpen {
			ctrl := m.ctrl
			return func() tea.Msg {
				ctrl.CloseMemories()
				return nil
			}, true
		}
		return nil, true
	case "x", "c":
		if m.modalURL != "" {
			return m.closeVisualization(), true
		}
		return nil, false
	}

	// The modal swallows everything else.
	if m.modalURL != "" {
		return nil, true
	}

	switch msg.String() {
	case "enter":
		return m.submit(), true
	case "ctrl+y":
		return m.rateLatest(true), true
	case "ctrl+n":
		return m.rateLatest(false), true
	case "ctrl+g":
		ctrl := m.ctrl
		return m.start(func(ctx context.Context) string {
			ctrl.VisualizeMemory(ctx)
			return ""
		}), true
	case "ctrl+s":
		ctrl := m.ctrl
		return m.start(func(ctx context.Context) string {
			ctrl.SaveState(ctx)
			return ""
		}), true
	}
	return nil, false
}

func (m *Model) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.Reset()

	ctrl, router := m.ctrl, m.router
	return m.start(func(ctx context.Context) string {
		if out, handled := router.Execute(ctx, text); handled {
			return out
		}
		ctrl.SendMessage(ctx, text)
		return ""
	})
}

func (m *Model) rateLatest(positive bool) tea.Cmd {
	id, ok := m.ctrl.LatestReplyID()
	if !ok {
		m.push(entry{kind: entrySystem, text: "No brain reply to rate yet."})
		return nil
	}

	ctrl := m.ctrl
	return m.start(func(ctx context.Context) string {
		ctrl.SendFeedback(ctx, id, positive)
		return ""
	})
}

func (m *Model) closeVisualization() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.CloseVisualization()
		return nil
	}
}

// start runs fn off the event loop and keeps the spinner going meanwhile.
func (m *Model) start(fn func(ctx context.Context) string) tea.Cmd {
	ctx := m.ctx
	run := func() tea.Msg {
		return opDoneMsg{output: fn(ctx)}
	}

	m.busy++
	if m.busy == 1 {
		return tea.Batch(m.spinner.Tick, run)
	}
	return run
}

func (m *Model) push(e entry) {
	m.history = append(m.history, e)
	m.refresh()
}

func (m *Model) markFeedback(id string, positive bool) {
	rating := -1
	if positive {
		rating = 1
	}
	for i := range m.history {
		if m.history[i].kind == entryBrain && m.history[i].id == id {
			m.history[i].rating = rating
		}
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-8, 10)
	m.layout()
}

func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.viewport.Width = m.chatWidth()
	m.viewport.Height = max(m.height-headerHeight-inputHeight-footerHeight, 1)
	m.renderer = newRenderer(m.style, max(m.viewport.Width-4, 20))
	m.refresh()
}

func (m Model) chatWidth() int {
	if m.memoriesOpen {
		return m.width * 3 / 5
	}
	return m.width
}

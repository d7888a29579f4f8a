package installer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/providers/brain"
)

const checkTimeout = 5 * time.Second

// ValidateBrainURL normalizes the brain address. Empty input selects the
// default address.
func ValidateBrainURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return config.DefaultBrainURL, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return "", errors.New("URL has no host")
	}
	return strings.TrimRight(raw, "/"), nil
}

// BrainURLStep collects the brain service address
type BrainURLStep struct {
	input textinput.Model
	err   error
}

func NewBrainURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = config.DefaultBrainURL
	return &BrainURLStep{input: ti}
}

func (s *BrainURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *BrainURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val, err := ValidateBrainURL(s.input.Value())
		if err != nil {
			s.err = err
			return s, nil
		}
		state.Env.BrainURL = val
		return nil, nil
	}
	return s, cmd
}

func (s *BrainURLStep) View(state *InstallState) string {
	v := "Enter the brain service URL:\n\n" + s.input.View() + "\n\n"
	if s.err != nil {
		v += errorStyle.Render(s.err.Error()) + "\n\n"
	}
	return v + hintStyle.Render("(press enter to confirm, empty for default)") + "\n"
}

type checkResultMsg struct {
	stats core.Stats
	err   error
}

// CheckBrainStep pings the entered address. An unreachable brain is
// reported but does not stop the installation.
type CheckBrainStep struct {
	spinner spinner.Model
	checker func(ctx context.Context, baseURL string) (core.Stats, error)
	url     string
	done    bool
	result  checkResultMsg
}

func NewCheckBrainStep() Step {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &CheckBrainStep{spinner: sp, checker: checkBrain}
}

func checkBrain(ctx context.Context, baseURL string) (core.Stats, error) {
	client := brain.NewClient(config.BrainConfig{URL: baseURL, HTTPTimeout: checkTimeout})
	return client.Status(ctx)
}

func (s *CheckBrainStep) Init() tea.Cmd {
	return s.spinner.Tick
}

func (s *CheckBrainStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.url == "" {
		s.url = state.Env.BrainURL
		url, check := s.url, s.checker
		return s, tea.Batch(s.spinner.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
			defer cancel()
			stats, err := check(ctx, url)
			return checkResultMsg{stats: stats, err: err}
		})
	}

	switch msg := msg.(type) {
	case checkResultMsg:
		s.done = true
		s.result = msg
		return s, nil
	case spinner.TickMsg:
		if s.done {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	case tea.KeyMsg:
		if s.done && msg.String() == "enter" {
			return nil, nil
		}
	}
	return s, nil
}

func (s *CheckBrainStep) View(state *InstallState) string {
	if !s.done {
		return s.spinner.View() + " Contacting the brain at " + state.Env.BrainURL + "...\n"
	}
	if s.result.err != nil {
		return errorStyle.Render("Brain is not reachable: "+s.result.err.Error()) + "\n\n" +
			hintStyle.Render("The address is saved anyway. Press enter to continue.") + "\n"
	}
	return fmt.Sprintf("Brain is active: %d experiences, %d concepts.\n\n",
		s.result.stats.NeuralNetwork.ExperienceCounter, s.result.stats.Learning.ConceptsCount) +
		hintStyle.Render("(press enter to continue)") + "\n"
}

package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/brainchat/internal/config"
)

// FinalizationStep fills derived values
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	Finalize(state)
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}

func Finalize(state *InstallState) {
	state.Env.EnableTelegram = state.TelegramSelected() && state.Env.TelegramToken != ""
	if !state.Env.EnableTelegram {
		state.Env.TelegramToken = ""
		state.Env.TelegramOwner = 0
	}
	if state.Env.BrainURL == "" {
		state.Env.BrainURL = config.DefaultBrainURL
	}
	if state.Env.StatusInterval == 0 {
		state.Env.StatusInterval = config.DefaultStatusInterval
	}
	if state.Env.Debug == "" {
		state.Env.Debug = "0"
	}
}

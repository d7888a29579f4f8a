package installer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBrainURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty selects default", input: "  ", want: "http://127.0.0.1:5000"},
		{name: "plain", input: "http://brain.local:5000", want: "http://brain.local:5000"},
		{name: "trailing slash trimmed", input: "https://brain.example.com/", want: "https://brain.example.com"},
		{name: "missing scheme", input: "brain.local:5000", wantErr: true},
		{name: "ftp scheme", input: "ftp://brain.local", wantErr: true},
		{name: "no host", input: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateBrainURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOwnerID(t *testing.T) {
	id, err := ParseOwnerID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-5"} {
		_, err := ParseOwnerID(bad)
		assert.Error(t, err, bad)
	}
}

func TestFinalize(t *testing.T) {
	t.Run("terminal drops telegram answers", func(t *testing.T) {
		state := NewInstallState(t.TempDir())
		state.Env.TelegramToken = "leftover"

		Finalize(state)

		assert.False(t, state.Env.EnableTelegram)
		assert.Empty(t, state.Env.TelegramToken)
		assert.Equal(t, "http://127.0.0.1:5000", state.Env.BrainURL)
		assert.Equal(t, 10*time.Second, state.Env.StatusInterval)
		assert.Equal(t, "0", state.Env.Debug)
	})

	t.Run("telegram with token", func(t *testing.T) {
		state := NewInstallState(t.TempDir())
		state.Channel = ChannelTelegram
		state.Env.TelegramToken = "123:abc"
		state.Env.TelegramOwner = 7

		Finalize(state)

		assert.True(t, state.Env.EnableTelegram)
		assert.Equal(t, int64(7), state.Env.TelegramOwner)
	})
}

func TestSaveEnv(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runtime")
	state := NewInstallState(dir)
	state.Channel = ChannelTelegram
	state.Env.BrainURL = "http://brain.local:5000"
	state.Env.TelegramToken = "123:abc"
	state.Env.TelegramOwner = 7
	Finalize(state)

	require.NoError(t, SaveEnv(state))

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "BRAIN_URL=http://brain.local:5000\n"+
		"BRAIN_STATUS_INTERVAL=10s\n"+
		"ENABLE_TELEGRAM=true\n"+
		"TELEGRAM_TOKEN=123:abc\n"+
		"TELEGRAM_OWNER_ID=7\n"+
		"BRAIN_DEBUG=0\n", string(data))

	err = SaveEnv(state)
	assert.ErrorContains(t, err, "already exists")
}

func enter() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestWizard_SkipsTelegramStepsForTerminal(t *testing.T) {
	m := newModel([]Step{
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
		NewFinalizationStep(),
	}, NewInstallState(t.TempDir()))

	next, _ := m.Update(enter())
	m = next.(model)

	assert.Equal(t, ChannelTerminal, m.state.Channel)
	assert.Equal(t, 3, m.currentStep)

	next, cmd := m.Update(nextMsg{})
	m = next.(model)
	assert.Equal(t, 4, m.currentStep)
	assert.NotNil(t, cmd)
	assert.Equal(t, "http://127.0.0.1:5000", m.state.Env.BrainURL)
}

func TestWizard_TelegramBranch(t *testing.T) {
	m := newModel([]Step{
		NewChannelStep(),
		NewTelegramTokenStep(),
		NewTelegramOwnerStep(),
	}, NewInstallState(t.TempDir()))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)
	next, _ = m.Update(enter())
	m = next.(model)
	require.Equal(t, ChannelTelegram, m.state.Channel)
	assert.Equal(t, 1, m.currentStep)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("123:abc")})
	m = next.(model)
	next, _ = m.Update(enter())
	m = next.(model)
	assert.Equal(t, "123:abc", m.state.Env.TelegramToken)
	assert.Equal(t, 2, m.currentStep)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})
	m = next.(model)
	next, _ = m.Update(enter())
	m = next.(model)
	assert.Equal(t, 2, m.currentStep, "invalid owner id keeps the step open")
}

func TestWizard_CtrlCQuits(t *testing.T) {
	m := newModel([]Step{NewChannelStep()}, NewInstallState(t.TempDir()))

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(model).quitting)
	assert.NotNil(t, cmd)
	assert.Equal(t, "Installation cancelled.\n", next.View())
}

func TestCheckBrainStep(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		wants string
	}{
		{name: "active", wants: "Brain is active: 3 experiences"},
		{name: "unreachable", err: errors.New("connection refused"), wants: "Brain is not reachable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewInstallState(t.TempDir())
			state.Env.BrainURL = "http://brain.local:5000"

			var gotURL string
			step := NewCheckBrainStep().(*CheckBrainStep)
			step.checker = func(ctx context.Context, baseURL string) (core.Stats, error) {
				gotURL = baseURL
				return core.Stats{NeuralNetwork: core.NeuralStats{ExperienceCounter: 3}}, tt.err
			}

			next, cmd := step.Update(step.spinner.Tick(), state, 80, 24)
			require.NotNil(t, next)
			require.NotNil(t, cmd)

			// The batch runs the check; execute it directly.
			batch, ok := cmd().(tea.BatchMsg)
			require.True(t, ok)
			var result tea.Msg
			for _, c := range batch {
				if msg, ok := c().(checkResultMsg); ok {
					result = msg
				}
			}
			require.NotNil(t, result)
			assert.Equal(t, "http://brain.local:5000", gotURL)

			next, _ = step.Update(result, state, 80, 24)
			assert.Contains(t, next.View(state), tt.wants)

			next, _ = step.Update(enter(), state, 80, 24)
			assert.Nil(t, next)
		})
	}
}

package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/pkg/log"
)

// Poller refreshes brain stats until ctx ends.
type Poller interface {
	Poll(ctx context.Context, interval time.Duration)
}

// Run serves the chat in the terminal until the user quits.
func Run(ctx context.Context, ctrl Controller, poller Poller, router core.CmdRouter, events *EventView, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer events.Close()

	style := styles.LightStyle
	if lipgloss.HasDarkBackground() {
		style = styles.DarkStyle
	}

	p := tea.NewProgram(
		NewModel(ctx, ctrl, router, events, WithGlamourStyle(style)),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	go poller.Poll(ctx, interval)

	log.FromCtx(ctx).Info().Dur("interval", interval).Msg("terminal chat started")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal chat: %w", err)
	}
	return nil
}

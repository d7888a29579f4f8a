package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/brainchat/internal/core"
)

type SaveCommand struct {
	session Session
}

func NewSaveCommand(s Session) core.Command {
	return &SaveCommand{session: s}
}

func (c *SaveCommand) Name() string {
	return "save"
}

func (c *SaveCommand) Description() string {
	return "Ask the brain to save its state"
}

func (c *SaveCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.session.SaveState(ctx)
	return "", nil
}

type StatsCommand struct {
	session   Session
	formatter *ResponseFormatter
}

func NewStatsCommand(s Session) core.Command {
	return &StatsCommand{session: s, formatter: NewResponseFormatter()}
}

func (c *StatsCommand) Name() string {
	return "stats"
}

func (c *StatsCommand) Description() string {
	return "Show brain statistics"
}

func (c *StatsCommand) Execute(ctx context.Context, args []string) (string, error) {
	c.session.RefreshStats(ctx)

	stats, ok := c.session.Stats()
	if !ok {
		return "", errors.New("brain statistics are not available")
	}
	return FormatStats(c.formatter, stats), nil
}

// FormatStats renders the brain counters as a markdown card.
func FormatStats(f *ResponseFormatter, s core.Stats) string {
	sections := []string{
		f.Heading("Brain Status"),
		f.Label("Experiences", fmt.Sprintf("%d", s.NeuralNetwork.ExperienceCounter)),
		f.Label("Curiosity", fmt.Sprintf("%.2f", s.NeuralNetwork.CuriosityFactor)),
		f.Label("Short-term memory", fmt.Sprintf("%d", s.Memory.STMSize)),
		f.Label("Long-term memory", fmt.Sprintf("%d", s.Memory.LTMSize)),
		f.Label("Exploration rate", fmt.Sprintf("%.2f", s.Learning.ExplorationRate)),
		f.Label("Concepts", fmt.Sprintf("%d", s.Learning.ConceptsCount)),
	}
	if s.WebExplorer != nil {
		sections = append(sections,
			f.Label("URLs visited", fmt.Sprintf("%d", s.WebExplorer.URLsVisited)),
			f.Label("URLs queued", fmt.Sprintf("%d", s.WebExplorer.URLsInQueue)),
		)
	}
	return f.Combine(sections...)
}

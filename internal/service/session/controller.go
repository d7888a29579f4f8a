package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/providers/brain"
	"github.com/sandevgo/brainchat/pkg/log"
)

type Option func(*Controller)

// WithURLResolver sets how server relative references (visualization
// images) become absolute URLs.
func WithURLResolver(fn func(string) string) Option {
	return func(c *Controller) {
		c.resolve = fn
	}
}

// WithClock replaces the clock used to generate message ids.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.records = NewRecordStore(now)
	}
}

// Controller is one chat session against the brain. It owns the record
// map used for feedback attribution and the overlay states, and reports
// every outcome to its View. Operations block on the network and are safe
// to run from concurrent goroutines.
type Controller struct {
	brain   core.Brain
	view    core.View
	cfg     core.BrainConfig
	records *RecordStore
	resolve func(string) string

	mu            sync.Mutex
	modal         modal
	memoryVisible bool
	stats         *core.Stats
}

func NewController(b core.Brain, view core.View, cfg core.BrainConfig, opts ...Option) *Controller {
	c := &Controller{
		brain:   b,
		view:    view,
		cfg:     cfg,
		records: NewRecordStore(nil),
		resolve: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SendMessage sends the trimmed text to the brain and renders its reply
// with feedback controls. It reports whether a request was made.
func (c *Controller) SendMessage(ctx context.Context, text string) bool {
	message := strings.TrimSpace(text)
	if message == "" {
		return false
	}

	c.view.AddUserMessage(message)

	res, err := c.brain.Interact(ctx, message)
	if err != nil {
		c.reportError(ctx, "interact", err, msgBrainComm)
		return true
	}

	id := c.records.Add(core.Record{
		Input:     res.Input,
		Output:    res.Response,
		Timestamp: res.Timestamp,
	})
	log.FromCtx(ctx).Debug().
		Str("message_id", id).
		Float64("processing_time", res.ProcessingTime).
		Msg("brain replied")

	c.view.AddAssistantMessage(id, res.Response)
	c.RefreshStats(ctx)
	return true
}

// SendFeedback rates the reply stored under id. Unknown ids are logged
// and nothing is sent.
func (c *Controller) SendFeedback(ctx context.Context, id string, positive bool) bool {
	logger := log.FromCtx(ctx)
	logger.Debug().Str("message_id", id).Bool("positive", positive).Msg("sending feedback")

	rec, ok := c.records.Get(id)
	if !ok {
		logger.Error().Str("message_id", id).Msg("message details not found, feedback not sent")
		return false
	}

	c.view.MarkFeedback(id, positive)

	_, err := c.brain.Feedback(ctx, core.Feedback{
		MessageID:  id,
		Input:      rec.Input,
		Output:     rec.Output,
		IsPositive: positive,
	})
	if err != nil {
		c.reportError(ctx, "feedback", err, msgBrainConnection)
		return true
	}

	logger.Debug().Str("message_id", id).Msg("feedback sent")
	return true
}

// LatestReplyID is the id of the most recent brain reply, if any.
func (c *Controller) LatestReplyID() (string, bool) {
	return c.records.Latest()
}

// Record returns the exchange stored under id.
func (c *Controller) Record(id string) (core.Record, bool) {
	return c.records.Get(id)
}

// ExploreWeb asks the brain to crawl. pagesField is the raw page-count
// input; see ParsePageCount.
func (c *Controller) ExploreWeb(ctx context.Context, pagesField string) int {
	pages := ParsePageCount(pagesField, c.cfg.GetDefaultPages())

	c.view.AddSystemMessage(msgExploring)

	explored, err := c.brain.ExploreWeb(ctx, pages)
	if err != nil {
		c.reportError(ctx, "explore_web", err, msgExplorerComm)
		return pages
	}

	c.view.AddSystemMessage(fmt.Sprintf(msgExploreDone, explored))
	c.RefreshStats(ctx)
	return pages
}

// AddURL queues a seed URL for exploration. The server's message is always
// shown; the result tells the caller whether to clear its input.
func (c *Controller) AddURL(ctx context.Context, field string) bool {
	url := strings.TrimSpace(field)
	if url == "" {
		return false
	}

	msg, err := c.brain.AddURL(ctx, url)
	if err != nil {
		if apiErr, ok := brain.AsAPIError(err); ok {
			c.view.AddSystemMessage(apiErr.UserMessage())
			return false
		}
		c.reportError(ctx, "add_url", err, msgExplorerComm)
		return false
	}

	c.view.AddSystemMessage(msg)
	return true
}

// SearchMemory retrieves memories related to query and shows them in the
// memory panel. It reports whether a request was made.
func (c *Controller) SearchMemory(ctx context.Context, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}

	items, err := c.brain.RetrieveMemory(ctx, q, c.cfg.GetMemoryTopK())
	if err != nil {
		c.reportError(ctx, "retrieve_memory", err, msgMemoryComm)
		return true
	}

	c.mu.Lock()
	c.memoryVisible = true
	c.mu.Unlock()

	c.view.ShowMemories(RenderMemories(items))
	return true
}

func (c *Controller) CloseMemories() {
	c.mu.Lock()
	wasVisible := c.memoryVisible
	c.memoryVisible = false
	c.mu.Unlock()

	if wasVisible {
		c.view.HideMemories()
	}
}

func (c *Controller) MemoriesVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memoryVisible
}

// VisualizeMemory fetches a memory network rendering and opens the modal.
func (c *Controller) VisualizeMemory(ctx context.Context) {
	ref, err := c.brain.VisualizeMemory(ctx)
	if err != nil {
		c.reportError(ctx, "visualize_memory", err, msgMemoryComm)
		return
	}

	url := c.resolve(ref)

	c.mu.Lock()
	c.modal.open(url)
	c.mu.Unlock()

	log.FromCtx(ctx).Debug().Str("url", url).Msg("visualization shown")
	c.view.ShowVisualization(url)
}

// CloseVisualization hides the modal. Closing a hidden modal does nothing.
func (c *Controller) CloseVisualization() bool {
	c.mu.Lock()
	closed := c.modal.close()
	c.mu.Unlock()

	if closed {
		c.view.HideVisualization()
	}
	return closed
}

// Modal returns the overlay state and the URL it shows.
func (c *Controller) Modal() (ModalState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal.state, c.modal.url
}

// SaveState asks the brain to persist itself and shows its answer verbatim.
func (c *Controller) SaveState(ctx context.Context) {
	msg, err := c.brain.SaveBrain(ctx)
	if err != nil {
		if apiErr, ok := brain.AsAPIError(err); ok {
			c.view.AddSystemMessage(apiErr.UserMessage())
			return
		}
		c.reportError(ctx, "save_brain", err, msgBrainComm)
		return
	}
	c.view.AddSystemMessage(msg)
}

// RefreshStats pulls the brain counters into the view. A brain that is not
// active is skipped silently; an unreachable one yields a system message.
func (c *Controller) RefreshStats(ctx context.Context) {
	logger := log.FromCtx(ctx)

	stats, err := c.brain.Status(ctx)
	if err != nil {
		if apiErr, ok := brain.AsAPIError(err); ok {
			logger.Warn().Str("status", apiErr.Status).Msg("brain is not active")
			return
		}
		logger.Error().Err(err).Msg("failed to fetch brain status")
		c.view.AddSystemMessage(msgBrainConnection)
		return
	}

	c.mu.Lock()
	c.stats = &stats
	c.mu.Unlock()

	c.view.UpdateStats(stats)
}

// Stats returns the last counters received.
func (c *Controller) Stats() (core.Stats, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stats == nil {
		return core.Stats{}, false
	}
	return *c.stats, true
}

// Poll refreshes stats immediately and then every interval until ctx ends.
func (c *Controller) Poll(ctx context.Context, interval time.Duration) {
	c.RefreshStats(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RefreshStats(ctx)
		}
	}
}

func (c *Controller) reportError(ctx context.Context, op string, err error, generic string) {
	if apiErr, ok := brain.AsAPIError(err); ok {
		c.view.AddSystemMessage(msgErrorPrefix + apiErr.UserMessage())
		return
	}
	log.FromCtx(ctx).Error().Err(err).Str("op", op).Msg("brain request failed")
	c.view.AddSystemMessage(generic)
}

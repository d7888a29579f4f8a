package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordingService struct {
	name    string
	mu      *sync.Mutex
	events  *[]string
	started chan struct{}
}

func (s *recordingService) Start(ctx context.Context) error {
	s.mu.Lock()
	*s.events = append(*s.events, "start "+s.name)
	s.mu.Unlock()
	close(s.started)
	return nil
}

func (s *recordingService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.events = append(*s.events, "stop "+s.name)
	return nil
}

func TestServices_Lifecycle(t *testing.T) {
	var mu sync.Mutex
	var events []string

	client := &recordingService{name: "client", mu: &mu, events: &events, started: make(chan struct{})}
	bot := &recordingService{name: "bot", mu: &mu, events: &events, started: make(chan struct{})}
	services := []Service{client, bot}

	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	for _, s := range []*recordingService{client, bot} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatalf("%s did not start", s.name)
		}
	}

	cancel()
	ShutdownServices(ctx, services)

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"start client", "start bot"}, events[:2])
	assert.Equal(t, []string{"stop bot", "stop client"}, events[2:])
}

func TestCleanup(t *testing.T) {
	called := false
	s := NewCleanup(func() error {
		called = true
		return errors.New("closed twice")
	})

	assert.NoError(t, s.Start(context.Background()))
	assert.EqualError(t, s.Shutdown(context.Background()), "closed twice")
	assert.True(t, called)

	assert.NoError(t, NewCleanup(nil).Shutdown(context.Background()))
}

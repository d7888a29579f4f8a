package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/brainchat/pkg/log"
)

const (
	DefaultBrainURL       = "http://127.0.0.1:5000"
	DefaultStatusInterval = 10 * time.Second
)

// BrainConfig describes how to reach the brain service.
type BrainConfig struct {
	URL            string        `env:"BRAIN_URL" envDefault:"http://127.0.0.1:5000"`
	StatusInterval time.Duration `env:"BRAIN_STATUS_INTERVAL" envDefault:"10s"`
	HTTPTimeout    time.Duration `env:"BRAIN_HTTP_TIMEOUT" envDefault:"2m"`
	MemoryTopK     int           `env:"BRAIN_MEMORY_TOP_K" envDefault:"5"`
	DefaultPages   int           `env:"BRAIN_DEFAULT_PAGES" envDefault:"3"`
}

func NewBrainConfig(ctx context.Context) *BrainConfig {
	c := &BrainConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Brain config")
	}
	return c
}

func (c BrainConfig) GetBrainURL() string {
	return c.URL
}

func (c BrainConfig) GetHTTPTimeout() time.Duration {
	return c.HTTPTimeout
}

func (c BrainConfig) GetStatusInterval() time.Duration {
	if c.StatusInterval <= 0 {
		return DefaultStatusInterval
	}
	return c.StatusInterval
}

func (c BrainConfig) GetMemoryTopK() int {
	if c.MemoryTopK <= 0 {
		return 5
	}
	return c.MemoryTopK
}

func (c BrainConfig) GetDefaultPages() int {
	if c.DefaultPages <= 0 {
		return 3
	}
	return c.DefaultPages
}

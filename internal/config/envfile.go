package config

import "time"

// EnvFile is the subset of settings the installer writes to the runtime .env.
type EnvFile struct {
	BrainURL       string        `env:"BRAIN_URL"`
	StatusInterval time.Duration `env:"BRAIN_STATUS_INTERVAL"`
	EnableTelegram bool          `env:"ENABLE_TELEGRAM"`
	TelegramToken  string        `env:"TELEGRAM_TOKEN"`
	TelegramOwner  int64         `env:"TELEGRAM_OWNER_ID"`
	Debug          string        `env:"BRAIN_DEBUG"`
}

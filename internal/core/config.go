package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetEnvPath() string
	GetLogPath() string
	IsTelegramSelected() bool
}

type BrainConfig interface {
	GetBrainURL() string
	GetHTTPTimeout() time.Duration
	GetStatusInterval() time.Duration
	GetMemoryTopK() int
	GetDefaultPages() int
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}

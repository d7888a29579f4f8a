package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/providers/brain"
	"github.com/sandevgo/brainchat/internal/transport/telegram"
	"github.com/sandevgo/brainchat/pkg/log"
	"github.com/sandevgo/brainchat/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	brainCfg := config.NewBrainConfig(ctx)

	// 2. Brain client
	client := brain.NewClient(brainCfg)
	services = append(services, srv.NewCleanup(client.Close))
	logger.Info().Str("url", client.BaseURL()).Msg("using brain")

	// 3. Transports
	transports, err := initTransports(ctx, appCfg, brainCfg, client)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Fatal().Msg("no transport enabled: set ENABLE_TELEGRAM=true or use 'brain chat'")
	}
	services = append(services, transports...)

	return services
}

func initTransports(ctx context.Context, cfg core.AppConfig, brainCfg *config.BrainConfig, client *brain.Client) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, brainCfg, client)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	return services, nil
}

// initEnv loads the .env file when present. Variables already set in the
// environment keep their values.
func initEnv(ctx context.Context, envFile string) error {
	logger := log.FromCtx(ctx)

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

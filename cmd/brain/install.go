package main

import (
	"github.com/joho/godotenv"
	"github.com/sandevgo/brainchat/internal/service/installer"
	"github.com/sandevgo/brainchat/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Write the BrainChat configuration",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		// run wizard (includes save step)
		paths := runtimePaths()
		runtimePath := paths.GetRuntimePath()
		state, err := installer.RunWizard(runtimePath)
		if err != nil {
			return err
		}

		envPath := paths.GetEnvPath()
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		if state.Env.EnableTelegram {
			logger.Info().Msg("Installation complete! Run 'brain start' to launch the Telegram bot.")
		} else {
			logger.Info().Msg("Installation complete! Run 'brain chat' to talk to the brain.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}

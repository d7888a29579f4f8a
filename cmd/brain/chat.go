package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/providers/brain"
	"github.com/sandevgo/brainchat/internal/service/command"
	"github.com/sandevgo/brainchat/internal/service/session"
	"github.com/sandevgo/brainchat/internal/transport/tui"
	"github.com/sandevgo/brainchat/pkg/log"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Chat with the brain in the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// The screen belongs to the UI, logs go to a file
		paths := runtimePaths()
		if err := os.MkdirAll(paths.GetRuntimePath(), 0o755); err != nil {
			return fmt.Errorf("create runtime directory: %w", err)
		}
		ctx, flushLog, err := log.NewContextWithFile(ctx, paths.GetLogPath(), isDebug())
		if err != nil {
			return err
		}
		defer flushLog()

		brainCfg := config.NewBrainConfig(ctx)
		client := brain.NewClient(brainCfg)
		defer client.Close()

		log.FromCtx(ctx).Info().Str("url", client.BaseURL()).Msg("starting terminal chat")

		events := tui.NewEventView()
		ctrl := session.NewController(client, events, brainCfg, session.WithURLResolver(client.ResolveURL))

		return tui.Run(ctx, ctrl, ctrl, command.NewSessionRouter(ctrl), events, brainCfg.GetStatusInterval())
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

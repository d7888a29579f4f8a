package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/providers/brain"
	"github.com/sandevgo/brainchat/internal/transport/mcp"
	"github.com/sandevgo/brainchat/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve the brain as MCP tools over stdio",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// stdout carries the protocol
		ctx, flushLog := log.NewContextWithWriter(ctx, os.Stderr, isDebug())
		defer flushLog()

		brainCfg := config.NewBrainConfig(ctx)
		client := brain.NewClient(brainCfg)
		defer client.Close()

		server := mcp.NewServer(client, brainCfg, client.ResolveURL, os.Stdin, os.Stdout)
		return server.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

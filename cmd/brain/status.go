package main

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/providers/brain"
	"github.com/sandevgo/brainchat/internal/service/command"
	"github.com/spf13/cobra"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:          "status",
	Short:        "Print the brain statistics once",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context())
		defer flushLog()

		brainCfg := config.NewBrainConfig(ctx)
		client := brain.NewClient(brainCfg)
		defer client.Close()

		stats, err := client.Status(ctx)
		if err != nil {
			if apiErr, ok := brain.AsAPIError(err); ok {
				return fmt.Errorf("brain is not active: %s", apiErr.UserMessage())
			}
			return fmt.Errorf("brain at %s is unreachable: %w", client.BaseURL(), err)
		}

		out := cmd.OutOrStdout()
		if statusJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}

		md := command.FormatStats(command.NewResponseFormatter(), stats)
		rendered, err := glamour.Render(md, styles.AutoStyle)
		if err != nil {
			rendered = md
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print raw JSON")
	rootCmd.AddCommand(statusCmd)
}

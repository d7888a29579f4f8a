package main

import (
	"context"
	"os"

	"github.com/sandevgo/brainchat/internal/config"
	"github.com/sandevgo/brainchat/internal/core"
	"github.com/sandevgo/brainchat/internal/service/ui"
	"github.com/sandevgo/brainchat/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug    bool
	brainURL string
)

var rootCmd = &cobra.Command{
	Use:     "brain",
	Short:   core.AppName + ": talk to a learning brain",
	Long:    core.AppName + " is a chat client for a self-learning brain service.\n" + core.RepositoryURL,
	Version: core.AppVersion,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initEnv(cmd.Context(), runtimePaths().GetEnvPath()); err != nil {
			return err
		}
		// The flag wins over the environment and the .env file
		if brainURL != "" {
			return os.Setenv("BRAIN_URL", brainURL)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&brainURL, "url", "u", "", "brain service URL (overrides BRAIN_URL)")
}

func isDebug() bool {
	return debug || config.IsDebug()
}

// runtimePaths locates the runtime files without parsing the rest of the
// configuration, so it works before any logger exists.
func runtimePaths() core.AppConfig {
	return &config.AppConfig{RuntimePath: config.GetRuntimePath()}
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, isDebug())
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{StyleUsage .UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}{{if .HasAvailableInheritedFlags}}{{StyleTitle "GLOBAL FLAGS"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces | StyleFlag}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}

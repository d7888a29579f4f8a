package ui

import "github.com/charmbracelet/lipgloss"

// Basic ANSI colors so the help output follows the terminal theme.
var (
	// TitleStyle cyan section titles
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	// UsageStyle green usage lines
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle gray descriptions
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	// FlagStyle yellow flags
	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Package console renders styled, human-readable CLI output: status
// messages, key-value summaries, and tables. Styling degrades to plain text
// when output is not a terminal.
package console

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/releasegate/relgate/pkg/styles"
)

var (
	successStyle  = lipgloss.NewStyle().Foreground(styles.ColorSuccess)
	warningStyle  = lipgloss.NewStyle().Foreground(styles.ColorWarning)
	errorStyle    = lipgloss.NewStyle().Foreground(styles.ColorError)
	infoStyle     = lipgloss.NewStyle().Foreground(styles.ColorInfo)
	locationStyle = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	titleStyle    = lipgloss.NewStyle().Foreground(styles.ColorInfo).Bold(true)
	borderStyle   = lipgloss.NewStyle().Foreground(styles.ColorMuted)
)

// FormatSuccessMessage formats a message for a passed check or a completed
// operation.
func FormatSuccessMessage(message string) string {
	return successStyle.Render("✅ " + message)
}

// FormatErrorMessage formats a failure message.
func FormatErrorMessage(message string) string {
	return errorStyle.Render("❌ " + message)
}

// FormatWarningMessage formats an advisory finding that does not fail a run.
func FormatWarningMessage(message string) string {
	return warningStyle.Render("⚠️  " + message)
}

// FormatInfoMessage formats a neutral informational message.
func FormatInfoMessage(message string) string {
	return infoStyle.Render(message)
}

// FormatProgressMessage formats the banner for an operation in progress.
func FormatProgressMessage(message string) string {
	return titleStyle.Render("🔍 " + message)
}

// FormatLocationMessage formats secondary detail such as file paths.
func FormatLocationMessage(message string) string {
	return locationStyle.Render(message)
}

// FormatVerboseMessage formats diagnostic detail shown only in verbose mode.
func FormatVerboseMessage(message string) string {
	return locationStyle.Render(message)
}

// FormatCommandMessage formats a shell command suggested to the user.
func FormatCommandMessage(message string) string {
	return infoStyle.Render(message)
}

// IsAccessibleMode reports whether interactive prompts should run in
// accessible mode, per the ACCESSIBLE convention used by charm tooling.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != ""
}

// TableConfig describes a table for RenderTable.
type TableConfig struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTable renders a bordered table. An empty row set renders nothing.
func RenderTable(config TableConfig) string {
	if len(config.Rows) == 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(config.Headers...).
		Rows(config.Rows...)

	out := t.Render() + "\n"
	if config.Title != "" {
		out = titleStyle.Render(config.Title) + "\n" + out
	}
	return out
}

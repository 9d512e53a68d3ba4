// Package styles defines the shared color palette for console output.
// Colors are adaptive so output stays readable on light and dark terminals.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// ColorSuccess is used for passing checks and completed operations.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#107C10", Dark: "#3FB950"}

	// ColorWarning is used for advisory findings that do not fail a run.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"}

	// ColorError is used for failures.
	ColorError = lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"}

	// ColorInfo is used for neutral informational messages.
	ColorInfo = lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"}

	// ColorMuted is used for secondary detail such as paths and counts.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#59636E", Dark: "#9198A1"}
)

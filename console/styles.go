package console

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	goodStyle = cellStyle.
			Foreground(lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#7EE787"})

	badStyle = cellStyle.
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#FF7B72"})

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"})

	waterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#0550AE", Dark: "#388BFD"})

	surfaceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#A5D6FF"})

	bodyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#F2CC60"})

	statusLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

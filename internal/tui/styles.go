package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor   = lipgloss.AdaptiveColor{Light: "#6D28D9", Dark: "#7C3AED"}
	secondaryColor = lipgloss.AdaptiveColor{Light: "#4F46E5", Dark: "#6366F1"}
	mutedColor     = lipgloss.AdaptiveColor{Light: "#718096", Dark: "#6B7280"}
	accentColor    = lipgloss.AdaptiveColor{Light: "#B7791F", Dark: "#F59E0B"}
	errorColor     = lipgloss.AdaptiveColor{Light: "#C53030", Dark: "#EF4444"}
	successColor   = lipgloss.AdaptiveColor{Light: "#2F855A", Dark: "#10B981"}

	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 1)

	listStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	readerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#E2E8F0", Dark: "#1F2937"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#1A202C", Dark: "#D1D5DB"}).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(lipgloss.Color("#FFFFFF"))

	unreadStyle = lipgloss.NewStyle().
			Bold(true)

	starStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	badgeStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	successTextStyle = lipgloss.NewStyle().
				Foreground(successColor)
)

// labelColors is the palette a label can be given, in the order the label
// manager cycles through it.
var labelColors = []string{"red", "blue", "yellow", "green", "purple", "orange", "gray"}

var labelPalette = map[string]lipgloss.AdaptiveColor{
	"red":    {Light: "#C53030", Dark: "#FF6B6B"},
	"blue":   {Light: "#2B6CB0", Dark: "#5B9BD5"},
	"yellow": {Light: "#B7791F", Dark: "#FFD93D"},
	"green":  {Light: "#2F855A", Dark: "#6BCB77"},
	"purple": {Light: "#805AD5", Dark: "#CC5DE8"},
	"orange": {Light: "#C05621", Dark: "#FFA94D"},
	"gray":   {Light: "#718096", Dark: "#868E96"},
}

// labelColor maps a label color name to a terminal color. Unknown names
// fall back to the muted color.
func labelColor(name string) lipgloss.TerminalColor {
	if c, ok := labelPalette[strings.ToLower(name)]; ok {
		return c
	}
	return mutedColor
}

// nextLabelColor returns the palette entry after current.
func nextLabelColor(current string) string {
	for i, c := range labelColors {
		if c == strings.ToLower(current) {
			return labelColors[(i+1)%len(labelColors)]
		}
	}
	return labelColors[0]
}

// applyTheme pins the adaptive colors to the light or dark variant. Any
// other value leaves detection to the terminal.
func applyTheme(theme string) {
	switch theme {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}
}

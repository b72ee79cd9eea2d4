// Package themes defines the colors and styles of the review screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the review screen.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Selected      lipgloss.Style
	Muted         lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	Primary       lipgloss.Color
	Border        lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#5B8DEF"),
	Border:  lipgloss.Color("#404040"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#5B8DEF")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Italic(true),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(0, 1),

	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	StatusWarning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
}

// Mono renders without colors, for terminals that cannot show them.
var Mono = Theme{
	Primary:       lipgloss.Color(""),
	Border:        lipgloss.Color(""),
	Title:         lipgloss.NewStyle().Bold(true),
	Subtitle:      lipgloss.NewStyle(),
	Normal:        lipgloss.NewStyle(),
	Selected:      lipgloss.NewStyle().Reverse(true),
	Muted:         lipgloss.NewStyle().Faint(true),
	RoundedBox:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	StatusSuccess: lipgloss.NewStyle().Bold(true),
	StatusWarning: lipgloss.NewStyle().Bold(true),
	StatusError:   lipgloss.NewStyle().Bold(true),
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "mono":
		return Mono
	default:
		return Default
	}
}

// CategoryIcons maps clause categories to icons.
var CategoryIcons = map[string]string{
	"payment_terms":        "💰",
	"laytime_clauses":      "⏱",
	"cargo_specifications": "📦",
	"port_clauses":         "⚓",
	"general_terms":        "📜",
	"key_entities":         "🏷",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "•"
}

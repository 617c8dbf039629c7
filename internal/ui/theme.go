package ui

import "github.com/charmbracelet/lipgloss"

// hw's color palette — notebook paper and highlighter inks.
var (
	// Primary colors
	Violet   = lipgloss.Color("#7C6FCF")
	Sky      = lipgloss.Color("#4FA3D1")
	Mint     = lipgloss.Color("#3EB489")
	Coral    = lipgloss.Color("#E8604C")
	Marigold = lipgloss.Color("#E9A820")
	Graphite = lipgloss.Color("#8A8691")
	Chalk    = lipgloss.Color("#F4F1EA")
	Dim      = lipgloss.Color("#666666")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Violet)

	Subtitle = lipgloss.NewStyle().
			Foreground(Sky)

	Success = lipgloss.NewStyle().
		Foreground(Mint)

	Error = lipgloss.NewStyle().
		Foreground(Coral)

	Warning = lipgloss.NewStyle().
		Foreground(Marigold)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Violet).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Chalk)

	// Bucket header styles for the grouped assignment list.
	OverdueHeader  = lipgloss.NewStyle().Foreground(Coral).Bold(true)
	TodayHeader    = lipgloss.NewStyle().Foreground(Marigold).Bold(true)
	TomorrowHeader = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	WeekHeader     = lipgloss.NewStyle().Foreground(Mint).Bold(true)
	LaterHeader    = lipgloss.NewStyle().Foreground(Graphite).Bold(true)
)

// Icon constants — consistent emoji language.
const (
	IconBook      = "📚"
	IconCalendar  = "📅"
	IconFire      = "🔥"
	IconAlarm     = "🚨"
	IconSleep     = "💤"
	IconSpark     = "✨"
	IconHourglass = "⏳"
	IconParty     = "🎉"
	IconWarn      = "⚠️ "
	IconError     = "✗ "
	IconOk        = "✓ "
	IconArrow     = "→"
	IconDot       = "·"
)

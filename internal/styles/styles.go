package styles

import "github.com/charmbracelet/lipgloss"

// Color palette - default dark theme
var (
	// Text colors
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")

	// Background colors
	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")

	// Grid colors
	HeaderFg    = lipgloss.Color("#9CA3AF")
	GutterFg    = lipgloss.Color("#E5E7EB")
	ElapsedBg   = lipgloss.Color("#374151")
	EventBg     = lipgloss.Color("#3B82F6") // intervals without a style
	ScheduledBg = lipgloss.Color("#7C3AED")
	ClockedBg   = lipgloss.Color("#10B981")
	TimedBg     = lipgloss.Color("#3B82F6")
	ConflictBg  = lipgloss.Color("#EF4444")
	CursorBg    = lipgloss.Color("#F59E0B")

	// Status colors
	Success      = lipgloss.Color("#10B981")
	Error        = lipgloss.Color("#EF4444")
	BorderActive = lipgloss.Color("#7C3AED")
)

// Grid styles
var (
	Header = lipgloss.NewStyle().
		Foreground(HeaderFg)

	Gutter = lipgloss.NewStyle().
		Foreground(GutterFg).
		Bold(true)

	Elapsed = lipgloss.NewStyle().
		Background(ElapsedBg)

	Event = lipgloss.NewStyle().
		Background(EventBg).
		Foreground(TextPrimary)

	Conflict = lipgloss.NewStyle().
			Background(ConflictBg).
			Foreground(TextPrimary).
			Bold(true)

	Cursor = lipgloss.NewStyle().
		Background(CursorBg).
		Foreground(BgPrimary)
)

// Viewer styles
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	Popup = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)

	ToastSuccess = lipgloss.NewStyle().
			Background(Success).
			Foreground(BgPrimary).
			Bold(true).
			Padding(0, 1)

	ToastError = lipgloss.NewStyle().
			Background(Error).
			Foreground(TextPrimary).
			Bold(true).
			Padding(0, 1)
)

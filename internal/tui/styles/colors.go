package styles

import "github.com/charmbracelet/lipgloss"

// Ward Night -- Dark Palette
// Deep slate backgrounds with clinical teal accents.

var (
	// Backgrounds (darkest to lightest)
	BgDeep    = lipgloss.Color("#0b1014") // Deepest -- main background
	BgPanel   = lipgloss.Color("#121a20") // Panel/card background
	BgSurface = lipgloss.Color("#1b2730") // Elevated surface
	BgHover   = lipgloss.Color("#24333f") // Hover/selected row

	// Accents
	AccentPrimary   = lipgloss.Color("#2dd4bf") // Teal -- primary actions, focused borders
	AccentSecondary = lipgloss.Color("#60a5fa") // Blue -- secondary info
	AccentTertiary  = lipgloss.Color("#a78bfa") // Violet -- chat/assistant
	AccentAmber     = lipgloss.Color("#fbbf24") // Amber -- highlights, recording timer

	// Status
	StatusOK    = lipgloss.Color("#34d399") // Green
	StatusWarn  = lipgloss.Color("#f59e0b") // Amber
	StatusError = lipgloss.Color("#f87171") // Red
	StatusInfo  = lipgloss.Color("#60a5fa") // Blue

	// Text
	TextPrimary   = lipgloss.Color("#e7edf3") // High contrast
	TextSecondary = lipgloss.Color("#9db2c4") // Dimmed
	TextMuted     = lipgloss.Color("#647789") // Very dim

	// Borders
	BorderNormal  = lipgloss.Color("#2b3a46") // Subtle
	BorderFocused = lipgloss.Color("#2dd4bf") // Teal focus ring
)

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
)

// KeyHint describes a single keybinding hint for display in the footer.
type KeyHint struct {
	Key  string // "q", "tab", "up/dn"
	Desc string // "quit", "switch", "navigate"
}

// Footer renders context-aware keybinding hints.
type Footer struct {
	Hints []KeyHint
	Width int
}

// Render returns the styled footer string.
func (f Footer) Render() string {
	width := f.Width
	if width <= 0 {
		width = 80
	}

	keyStyle := lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	sepStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)

	var parts []string
	for _, h := range f.Hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Desc))
	}

	content := strings.Join(parts, sepStyle.Render(" • "))

	footerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextMuted).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return footerStyle.Render(content)
}

// WizardFooter returns a footer preset for setup wizard screens.
func WizardFooter(width int) Footer {
	return Footer{
		Hints: []KeyHint{
			{Key: "tab", Desc: "next field"},
			{Key: "↑↓", Desc: "choose"},
			{Key: "enter", Desc: "continue"},
			{Key: "esc", Desc: "back"},
			{Key: "ctrl+c", Desc: "quit"},
		},
		Width: width,
	}
}

// RecorderFooter returns a footer preset for the recording session. The
// hints follow the session state: sendable recordings get the send key.
func RecorderFooter(width int, sendable bool) Footer {
	hints := []KeyHint{
		{Key: "space", Desc: "pause/resume"},
		{Key: "s", Desc: "stop"},
	}
	if sendable {
		hints = []KeyHint{
			{Key: "enter", Desc: "send"},
			{Key: "r", Desc: "discard"},
		}
	}
	hints = append(hints, KeyHint{Key: "q", Desc: "quit"})
	return Footer{Hints: hints, Width: width}
}

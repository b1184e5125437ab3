package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
)

// Header renders the app header bar.
type Header struct {
	Server    string // server base URL
	User      string // clinician name, empty before setup
	Connected bool
	Width     int
}

// Render returns the styled header string.
func (h Header) Render() string {
	width := h.Width
	if width <= 0 {
		width = 80
	}

	logo := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render(styles.CompactLogo)

	sep := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("  │  ")

	server := styles.Label.Render("Server: ") +
		lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(h.Server)

	conn := styles.Badge("offline", styles.StatusError)
	if h.Connected {
		conn = styles.Badge("online", styles.StatusOK)
	}

	content := logo + sep + server + sep + conn

	if h.User != "" {
		user := styles.Label.Render("User: ") +
			lipgloss.NewStyle().Foreground(styles.AccentAmber).Bold(true).Render(h.User)
		content += sep + user
	}

	headerStyle := lipgloss.NewStyle().
		Background(styles.BgDeep).
		Foreground(styles.TextPrimary).
		Width(width).
		PaddingLeft(1).
		PaddingRight(1)

	return headerStyle.Render(content)
}

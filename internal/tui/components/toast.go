package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
)

// ToastLevel selects the toast's severity styling.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastWarn
	ToastError
)

// ShowToastMsg displays a toast. Error toasts stay until dismissed with a
// keypress; others expire on their own.
type ShowToastMsg struct {
	Text  string
	Level ToastLevel
}

// toastExpireMsg clears a toast once its display window passes. The serial
// guards against an old timer clearing a newer toast.
type toastExpireMsg struct{ serial int }

// Toast is a transient one-line notification anchored by its parent model.
type Toast struct {
	text    string
	level   ToastLevel
	visible bool
	serial  int
}

// Visible reports whether a toast is currently shown.
func (t Toast) Visible() bool { return t.visible }

// Blocking reports whether the toast requires explicit dismissal.
func (t Toast) Blocking() bool { return t.visible && t.level == ToastError }

// Show displays the given toast and returns the expiry command for
// non-blocking levels.
func (t Toast) Show(msg ShowToastMsg) (Toast, tea.Cmd) {
	t.text = msg.Text
	t.level = msg.Level
	t.visible = true
	t.serial++

	if msg.Level == ToastError {
		return t, nil
	}
	serial := t.serial
	return t, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return toastExpireMsg{serial: serial}
	})
}

// Update handles expiry messages. Other messages pass through untouched.
func (t Toast) Update(msg tea.Msg) Toast {
	if exp, ok := msg.(toastExpireMsg); ok && exp.serial == t.serial {
		t.visible = false
	}
	return t
}

// Dismiss hides the toast, used when a key is pressed on a blocking toast.
func (t Toast) Dismiss() Toast {
	t.visible = false
	return t
}

// View renders the toast, or an empty string when hidden.
func (t Toast) View() string {
	if !t.visible {
		return ""
	}

	var border lipgloss.Color
	var prefix string
	switch t.level {
	case ToastError:
		border = styles.StatusError
		prefix = "✗ "
	case ToastWarn:
		border = styles.StatusWarn
		prefix = "! "
	default:
		border = styles.AccentSecondary
		prefix = "ℹ "
	}

	style := styles.Card.
		Foreground(styles.TextPrimary).
		BorderForeground(border)

	text := prefix + t.text
	if t.level == ToastError {
		text += styles.Dim("  (any key to dismiss)")
	}
	return style.Render(text)
}

package styles

import "github.com/charmbracelet/lipgloss"

// CompactLogo is the inline wordmark used in headers and version output.
const CompactLogo = "✚ phlox"

// asciiLogo is the full banner shown on the setup welcome screen.
const asciiLogo = `
  ██████╗ ██╗  ██╗██╗      ██████╗ ██╗  ██╗
  ██╔══██╗██║  ██║██║     ██╔═══██╗╚██╗██╔╝
  ██████╔╝███████║██║     ██║   ██║ ╚███╔╝
  ██╔═══╝ ██╔══██║██║     ██║   ██║ ██╔██╗
  ██║     ██║  ██║███████╗╚██████╔╝██╔╝ ██╗
  ╚═╝     ╚═╝  ╚═╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝`

// Logo returns the banner rendered in the primary accent color.
func Logo() string {
	return lipgloss.NewStyle().
		Foreground(AccentPrimary).
		Bold(true).
		Render(asciiLogo)
}

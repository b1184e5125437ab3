package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bloodworks-io/phlox-cli/internal/tui/models"
	"github.com/bloodworks-io/phlox-cli/internal/wizard"
)

// RunOnboarding launches the interactive setup wizard TUI. It blocks until
// the user completes or cancels the wizard and reports whether setup was
// submitted to the server.
func RunOnboarding(backend wizard.Backend, serverURL string, chatEnabled bool) (bool, error) {
	model := models.NewOnboardingModel(backend, serverURL, chatEnabled)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("setup wizard failed: %w", err)
	}

	final, ok := finalModel.(models.OnboardingModel)
	if !ok {
		return false, nil
	}
	return final.Finished(), nil
}

package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/recorder"
	"github.com/bloodworks-io/phlox-cli/internal/tui/models"
)

// RunRecorder launches the interactive recording session TUI. It blocks
// until the recording is sent or discarded and returns the scribe output,
// nil when the user discarded the recording.
func RunRecorder(session *recorder.Session, uploader recorder.Uploader, serverURL string) (*api.TranscribeResponse, error) {
	model := models.NewRecorderModel(session, uploader, serverURL)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("recording session failed: %w", err)
	}

	final, ok := finalModel.(models.RecorderModel)
	if !ok {
		return nil, nil
	}
	if ferr := final.FatalErr(); ferr != nil {
		return nil, ferr
	}
	return final.Response(), nil
}

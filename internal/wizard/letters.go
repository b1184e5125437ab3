package wizard

import (
	"context"
	"strconv"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

// LettersStep picks the default letter template. The wizard tracks the
// selection as a string key; the server stores it as an integer ID under
// default_letter_template_id, converted at submit.
type LettersStep struct {
	backend Backend
	notify  Notifier

	templates   []api.LetterTemplate
	selectedKey string
	loading     bool
	fetched     bool
}

// NewLettersStep creates the letters step.
func NewLettersStep(backend Backend, notify Notifier) *LettersStep {
	return &LettersStep{backend: backend, notify: notify}
}

// ID implements Step.
func (s *LettersStep) ID() StepID { return StepLetters }

// Templates returns the fetched letter templates.
func (s *LettersStep) Templates() []api.LetterTemplate { return s.templates }

// SetSelectedKey chooses the default letter template by its string key
// (decimal template ID).
func (s *LettersStep) SetSelectedKey(key string) { s.selectedKey = key }

// SelectedKey returns the chosen letter template key.
func (s *LettersStep) SelectedKey() string { return s.selectedKey }

// Loading reports whether a fetch is in flight.
func (s *LettersStep) Loading() bool { return s.loading }

// Discover implements Discoverer. Same fetched-once guard as the note
// templates step.
func (s *LettersStep) Discover(ctx context.Context) {
	if s.fetched {
		return
	}

	s.loading = true
	defer func() { s.loading = false }()

	templates, err := s.backend.LetterTemplates(ctx)
	if err != nil {
		s.templates = nil
		s.fetched = false
		s.notify.Advise("Could not fetch letter templates: " + err.Error())
		return
	}

	s.templates = templates
	s.fetched = true
}

// Validate implements Step.
func (s *LettersStep) Validate() bool {
	return ValidateLetters(s.selectedKey)
}

// Data implements Step.
func (s *LettersStep) Data() map[string]any {
	id, err := strconv.Atoi(s.selectedKey)
	if err != nil {
		return map[string]any{}
	}
	return map[string]any{
		"default_letter_template_id": id,
	}
}

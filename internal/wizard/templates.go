package wizard

import (
	"context"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

// TemplatesStep picks the default clinical note template from the list the
// server offers.
type TemplatesStep struct {
	backend Backend
	notify  Notifier

	templates   []api.Template
	selectedKey string
	loading     bool
	fetched     bool
}

// NewTemplatesStep creates the templates step.
func NewTemplatesStep(backend Backend, notify Notifier) *TemplatesStep {
	return &TemplatesStep{backend: backend, notify: notify}
}

// ID implements Step.
func (s *TemplatesStep) ID() StepID { return StepTemplates }

// Templates returns the fetched note templates.
func (s *TemplatesStep) Templates() []api.Template { return s.templates }

// SetSelectedKey chooses the default note template.
func (s *TemplatesStep) SetSelectedKey(key string) { s.selectedKey = key }

// SelectedKey returns the chosen template key.
func (s *TemplatesStep) SelectedKey() string { return s.selectedKey }

// Loading reports whether a fetch is in flight.
func (s *TemplatesStep) Loading() bool { return s.loading }

// Discover implements Discoverer. The source is the Phlox server itself
// (a fixed endpoint for the session), so the memoization guard is a simple
// fetched-once flag; a failure clears it so the next activation retries.
func (s *TemplatesStep) Discover(ctx context.Context) {
	if s.fetched {
		return
	}

	s.loading = true
	defer func() { s.loading = false }()

	templates, err := s.backend.Templates(ctx)
	if err != nil {
		s.templates = nil
		s.fetched = false
		s.notify.Advise("Could not fetch note templates: " + err.Error())
		return
	}

	s.templates = templates
	s.fetched = true
}

// Validate implements Step.
func (s *TemplatesStep) Validate() bool {
	return ValidateTemplates(s.selectedKey)
}

// Data implements Step. The default template is persisted through a
// dedicated server call during submit, not via user settings.
func (s *TemplatesStep) Data() map[string]any { return map[string]any{} }

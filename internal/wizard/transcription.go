package wizard

import (
	"context"
	"strings"
)

// TranscriptionStep configures the optional speech-to-text endpoint. The
// step is skippable: an empty endpoint means transcription stays disabled.
type TranscriptionStep struct {
	backend Backend
	notify  Notifier

	endpoint string
	model    string

	models        []string
	listAvailable bool
	loading       bool

	validatedURL string
}

// NewTranscriptionStep creates the transcription step.
func NewTranscriptionStep(backend Backend, notify Notifier) *TranscriptionStep {
	return &TranscriptionStep{backend: backend, notify: notify}
}

// ID implements Step.
func (s *TranscriptionStep) ID() StepID { return StepTranscription }

// SetEndpoint records the transcription endpoint URL.
func (s *TranscriptionStep) SetEndpoint(endpoint string) { s.endpoint = strings.TrimSpace(endpoint) }

// Endpoint returns the current endpoint value.
func (s *TranscriptionStep) Endpoint() string { return s.endpoint }

// SetModel selects or manually enters the transcription model.
func (s *TranscriptionStep) SetModel(model string) { s.model = model }

// Model returns the current model value.
func (s *TranscriptionStep) Model() string { return s.model }

// Models returns the discovered model list.
func (s *TranscriptionStep) Models() []string { return s.models }

// ListAvailable reports whether the endpoint exposes a browsable model
// list. When false, the model field is free text.
func (s *TranscriptionStep) ListAvailable() bool { return s.listAvailable }

// Loading reports whether a discovery fetch is in flight.
func (s *TranscriptionStep) Loading() bool { return s.loading }

// Discover implements Discoverer. With an empty endpoint there is nothing
// to discover. Successful fetches with at least one model memoize the
// endpoint string; failures clear discovery state and surface one advisory.
func (s *TranscriptionStep) Discover(ctx context.Context) {
	if s.endpoint == "" {
		return
	}
	if s.endpoint == s.validatedURL {
		return
	}

	s.loading = true
	defer func() { s.loading = false }()

	list, err := s.backend.WhisperModels(ctx, s.endpoint)
	if err != nil {
		s.models = nil
		s.listAvailable = false
		s.validatedURL = ""
		s.notify.Advise("Could not reach the transcription endpoint: " + err.Error())
		return
	}

	s.models = list.Models
	s.listAvailable = list.ListAvailable
	if len(list.Models) > 0 {
		s.validatedURL = s.endpoint
	}
	if s.model != "" && s.listAvailable && len(s.models) > 0 && !contains(s.models, s.model) {
		s.model = ""
	}
}

// Validate implements Step.
func (s *TranscriptionStep) Validate() bool {
	return ValidateTranscription(s.endpoint, s.listAvailable, s.models, s.model)
}

// Data implements Step. Transcription settings live in the global
// configuration.
func (s *TranscriptionStep) Data() map[string]any { return map[string]any{} }

// GlobalData implements GlobalSettings.
func (s *TranscriptionStep) GlobalData() map[string]any {
	data := map[string]any{
		"WHISPER_BASE_URL": s.endpoint,
	}
	if s.model != "" {
		data["WHISPER_MODEL"] = s.model
	}
	return data
}

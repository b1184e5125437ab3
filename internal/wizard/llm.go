package wizard

import (
	"context"
	"strings"
)

// Providers the LLM step offers. "local" asks the server about models it
// has downloaded itself.
var LLMProviders = []string{"ollama", "openai", "local"}

// LLMStep configures the language-model provider: provider type, endpoint,
// optional API key, and the primary model discovered from the endpoint.
type LLMStep struct {
	backend Backend
	notify  Notifier

	provider     string
	endpoint     string
	apiKey       string
	primaryModel string

	models  []string
	loading bool

	// validatedURL memoizes the exact endpoint string of the last
	// successful non-empty discovery, suppressing redundant fetches when
	// the step is re-activated with an unchanged value. No TTL, no partial
	// matching -- any difference re-fetches.
	validatedURL string
}

// NewLLMStep creates the LLM step.
func NewLLMStep(backend Backend, notify Notifier) *LLMStep {
	return &LLMStep{
		backend:  backend,
		notify:   notify,
		provider: "ollama",
	}
}

// ID implements Step.
func (s *LLMStep) ID() StepID { return StepLLM }

// SetProvider changes the provider type. Discovered models belong to the
// previous provider, so they are cleared along with the memoized endpoint.
func (s *LLMStep) SetProvider(provider string) {
	if provider == s.provider {
		return
	}
	s.provider = provider
	s.models = nil
	s.primaryModel = ""
	s.validatedURL = ""
}

// Provider returns the current provider type.
func (s *LLMStep) Provider() string { return s.provider }

// SetEndpoint records the provider base URL. Called on blur, not on every
// keystroke; a changed value invalidates nothing by itself -- the next
// Discover compares against the memoized string.
func (s *LLMStep) SetEndpoint(endpoint string) { s.endpoint = strings.TrimSpace(endpoint) }

// Endpoint returns the current base URL value.
func (s *LLMStep) Endpoint() string { return s.endpoint }

// SetAPIKey records the provider API key.
func (s *LLMStep) SetAPIKey(key string) { s.apiKey = key }

// APIKey returns the current API key value.
func (s *LLMStep) APIKey() string { return s.apiKey }

// SetPrimaryModel selects the primary model.
func (s *LLMStep) SetPrimaryModel(model string) { s.primaryModel = model }

// PrimaryModel returns the selected primary model.
func (s *LLMStep) PrimaryModel() string { return s.primaryModel }

// Models returns the models discovered from the endpoint.
func (s *LLMStep) Models() []string { return s.models }

// Loading reports whether a discovery fetch is in flight.
func (s *LLMStep) Loading() bool { return s.loading }

// Discover implements Discoverer. A failed fetch clears the option list
// and the memoized endpoint, surfaces one advisory, and does not retry;
// the validator tolerates an empty list so navigation is never blocked.
func (s *LLMStep) Discover(ctx context.Context) {
	if s.endpoint != "" && s.endpoint == s.validatedURL {
		return
	}

	s.loading = true
	defer func() { s.loading = false }()

	models, err := s.backend.LLMModels(ctx, s.provider, s.endpoint, s.apiKey)
	if err != nil {
		s.models = nil
		s.validatedURL = ""
		s.notify.Advise("Could not reach the model endpoint: " + err.Error())
		return
	}

	s.models = models
	if len(models) > 0 {
		s.validatedURL = s.endpoint
	}
	// Drop a selection that the new list no longer contains.
	if s.primaryModel != "" && !contains(models, s.primaryModel) {
		s.primaryModel = ""
	}
}

// Validate implements Step.
func (s *LLMStep) Validate() bool {
	return ValidateLLM(s.models, s.primaryModel)
}

// Data implements Step. LLM settings live in the global configuration,
// not user settings.
func (s *LLMStep) Data() map[string]any { return map[string]any{} }

// GlobalData implements GlobalSettings.
func (s *LLMStep) GlobalData() map[string]any {
	data := map[string]any{
		"LLM_PROVIDER": s.provider,
		"LLM_BASE_URL": s.endpoint,
	}
	if s.apiKey != "" {
		data["LLM_API_KEY"] = s.apiKey
	}
	if s.primaryModel != "" {
		data["PRIMARY_MODEL"] = s.primaryModel
	}
	return data
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

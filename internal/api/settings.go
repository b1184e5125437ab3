package api

import "context"

// User settings keys recognized by the server. Settings travel as a plain
// JSON object because the server upserts whatever keys it receives; typed
// structs would silently drop fields the wizard does not own.
const (
	KeyName                    = "name"
	KeySpecialty               = "specialty"
	KeyQuickChat1Title         = "quick_chat_1_title"
	KeyQuickChat1Prompt        = "quick_chat_1_prompt"
	KeyQuickChat2Title         = "quick_chat_2_title"
	KeyQuickChat2Prompt        = "quick_chat_2_prompt"
	KeyQuickChat3Title         = "quick_chat_3_title"
	KeyQuickChat3Prompt        = "quick_chat_3_prompt"
	KeyDefaultLetterTemplateID = "default_letter_template_id"
	KeyOnboardingComplete      = "has_completed_splash_screen"
)

// Global configuration keys (provider/endpoint/model fields).
const (
	KeyLLMProvider    = "LLM_PROVIDER"
	KeyLLMBaseURL     = "LLM_BASE_URL"
	KeyLLMAPIKey      = "LLM_API_KEY"
	KeyPrimaryModel   = "PRIMARY_MODEL"
	KeyWhisperBaseURL = "WHISPER_BASE_URL"
	KeyWhisperModel   = "WHISPER_MODEL"
)

// UserSettings fetches the persisted per-user settings object.
func (c *Client) UserSettings(ctx context.Context) (map[string]any, error) {
	settings := make(map[string]any)
	if err := c.getJSON(ctx, "/api/config/user", nil, &settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveUserSettings upserts the given user settings object. The server
// merges by key, so partial payloads are safe.
func (c *Client) SaveUserSettings(ctx context.Context, settings map[string]any) error {
	return c.postJSON(ctx, "/api/config/user", settings, nil)
}

// GlobalConfig fetches the server's global provider/model configuration.
func (c *Client) GlobalConfig(ctx context.Context) (map[string]any, error) {
	cfg := make(map[string]any)
	if err := c.getJSON(ctx, "/api/config/global", nil, &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveGlobalConfig upserts the global provider/model configuration.
func (c *Client) SaveGlobalConfig(ctx context.Context, cfg map[string]any) error {
	return c.postJSON(ctx, "/api/config/global", cfg, nil)
}

// MarkOnboardingComplete sets the one-shot server-side flag recording that
// the user finished initial setup.
func (c *Client) MarkOnboardingComplete(ctx context.Context) error {
	return c.postJSON(ctx, "/api/config/user/mark_splash_complete", nil, nil)
}

// ServerVersion reports the server build version string.
func (c *Client) ServerVersion(ctx context.Context) (string, error) {
	var payload struct {
		Version string `json:"version"`
	}
	if err := c.getJSON(ctx, "/api/config/version", nil, &payload); err != nil {
		return "", err
	}
	return payload.Version, nil
}

// ServerStatus performs a cheap reachability probe against the server.
func (c *Client) ServerStatus(ctx context.Context) error {
	return c.getJSON(ctx, "/api/config/status", nil, nil)
}

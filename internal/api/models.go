package api

import (
	"context"
	"encoding/json"
	"net/url"
)

// WhisperModelList is the discovery result for a transcription endpoint.
// ListAvailable distinguishes "endpoint has no browsable model list" from
// "list exists but is empty" -- the wizard's transcription gate depends on
// the difference.
type WhisperModelList struct {
	Models        []string `json:"models"`
	ListAvailable bool     `json:"listAvailable"`
}

// modelEntry tolerates the two shapes the server emits for a model: a bare
// string, or an object with a name/id field (Ollama tag objects pass
// through the server unmodified).
type modelEntry struct {
	name string
}

func (m *modelEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		m.name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
		ID   string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if obj.Name != "" {
		m.name = obj.Name
	} else {
		m.name = obj.ID
	}
	return nil
}

func names(entries []modelEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.name != "" {
			out = append(out, e.name)
		}
	}
	return out
}

// LLMModels asks the server to enumerate models available from the given
// LLM provider endpoint. An empty list is a normal outcome: some providers
// do not expose a model list.
func (c *Client) LLMModels(ctx context.Context, provider, baseURL, apiKey string) ([]string, error) {
	q := url.Values{}
	q.Set("provider", provider)
	if baseURL != "" {
		q.Set("baseUrl", baseURL)
	}
	if apiKey != "" {
		q.Set("apiKey", apiKey)
	}

	var payload struct {
		Models []modelEntry `json:"models"`
		Error  string       `json:"error"`
	}
	if err := c.getJSON(ctx, "/api/config/llm/models", q, &payload); err != nil {
		return nil, err
	}
	return names(payload.Models), nil
}

// WhisperModels asks the server to enumerate models from a transcription
// endpoint. Endpoints without a /v1/models route report ListAvailable=false,
// which the wizard treats as "manual model entry required".
func (c *Client) WhisperModels(ctx context.Context, endpoint string) (WhisperModelList, error) {
	q := url.Values{}
	q.Set("whisperEndpoint", endpoint)

	var payload struct {
		Models        []modelEntry `json:"models"`
		ListAvailable bool         `json:"listAvailable"`
	}
	if err := c.getJSON(ctx, "/api/config/whisper/models", q, &payload); err != nil {
		return WhisperModelList{}, err
	}
	return WhisperModelList{
		Models:        names(payload.Models),
		ListAvailable: payload.ListAvailable,
	}, nil
}

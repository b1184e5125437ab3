package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLLMDiscoverMemoizesEndpoint(t *testing.T) {
	backend := newFakeBackend()
	backend.models = []string{"llama3", "mistral"}
	notify := &recordingNotifier{}
	s := NewLLMStep(backend, notify)
	s.SetEndpoint("http://llm.local:11434")

	ctx := context.Background()
	s.Discover(ctx)
	s.Discover(ctx)
	assert.Equal(t, 1, backend.llmModelCalls, "unchanged endpoint re-uses the first result")
	assert.Equal(t, []string{"llama3", "mistral"}, s.Models())

	// A different string is a different endpoint, full stop.
	s.SetEndpoint("http://llm.local:11434/")
	s.Discover(ctx)
	assert.Equal(t, 2, backend.llmModelCalls)
	assert.Empty(t, notify.advisories)
}

func TestLLMDiscoverFailureClearsAndAdvisesOnce(t *testing.T) {
	backend := newFakeBackend()
	backend.models = []string{"llama3"}
	notify := &recordingNotifier{}
	s := NewLLMStep(backend, notify)
	s.SetEndpoint("http://llm.local:11434")
	s.SetPrimaryModel("llama3")

	ctx := context.Background()
	s.Discover(ctx)
	assert.Equal(t, "llama3", s.PrimaryModel())

	backend.failLLMModels = true
	s.SetEndpoint("http://wrong.local:9999")
	s.Discover(ctx)

	assert.Nil(t, s.Models())
	assert.Len(t, notify.advisories, 1)
	assert.True(t, s.Validate(), "empty list falls back to the lenient default")

	// No automatic retry, but re-activation tries again because the failed
	// endpoint was never memoized.
	s.Discover(ctx)
	assert.Equal(t, 3, backend.llmModelCalls)
	assert.Len(t, notify.advisories, 2)
}

func TestLLMProviderChangeInvalidatesDiscovery(t *testing.T) {
	backend := newFakeBackend()
	backend.models = []string{"llama3"}
	s := NewLLMStep(backend, &recordingNotifier{})
	s.SetEndpoint("http://llm.local:11434")

	ctx := context.Background()
	s.Discover(ctx)
	s.SetPrimaryModel("llama3")

	s.SetProvider("openai")
	assert.Nil(t, s.Models())
	assert.Empty(t, s.PrimaryModel())

	s.Discover(ctx)
	assert.Equal(t, 2, backend.llmModelCalls, "memo cleared by the provider change")
}

func TestLLMDiscoverDropsStaleSelection(t *testing.T) {
	backend := newFakeBackend()
	backend.models = []string{"llama3", "mistral"}
	s := NewLLMStep(backend, &recordingNotifier{})
	s.SetEndpoint("http://a.local")

	ctx := context.Background()
	s.Discover(ctx)
	s.SetPrimaryModel("mistral")

	backend.models = []string{"qwen"}
	s.SetEndpoint("http://b.local")
	s.Discover(ctx)

	assert.Empty(t, s.PrimaryModel(), "selection absent from the new list is dropped")
	assert.False(t, s.Validate())
}

func TestTranscriptionDiscoverSkipsEmptyEndpoint(t *testing.T) {
	backend := newFakeBackend()
	s := NewTranscriptionStep(backend, &recordingNotifier{})

	s.Discover(context.Background())
	assert.Zero(t, backend.whisperModelCalls)
	assert.True(t, s.Validate())
}

func TestTranscriptionDiscoverMemoizesEndpoint(t *testing.T) {
	backend := newFakeBackend()
	backend.whisper.Models = []string{"base", "medium"}
	backend.whisper.ListAvailable = true
	s := NewTranscriptionStep(backend, &recordingNotifier{})
	s.SetEndpoint("http://whisper.local:8000")

	ctx := context.Background()
	s.Discover(ctx)
	s.Discover(ctx)
	assert.Equal(t, 1, backend.whisperModelCalls)
	assert.True(t, s.ListAvailable())

	s.SetModel("base")
	assert.True(t, s.Validate())
}

func TestTranscriptionDiscoverFailureClearsState(t *testing.T) {
	backend := newFakeBackend()
	backend.whisper.Models = []string{"base"}
	backend.whisper.ListAvailable = true
	notify := &recordingNotifier{}
	s := NewTranscriptionStep(backend, notify)
	s.SetEndpoint("http://whisper.local:8000")

	ctx := context.Background()
	s.Discover(ctx)

	backend.failWhisper = true
	s.SetEndpoint("http://other.local:8000")
	s.Discover(ctx)

	assert.Nil(t, s.Models())
	assert.False(t, s.ListAvailable())
	assert.Len(t, notify.advisories, 1)

	// Without a list the model field becomes required free text.
	assert.False(t, s.Validate())
	s.SetModel("medium")
	assert.True(t, s.Validate())
}

func TestControllerActivateRunsDiscovery(t *testing.T) {
	backend := newFakeBackend()
	backend.models = []string{"llama3"}
	c := New(backend, &recordingNotifier{}, Options{ChatEnabled: true})
	fillValid(t, c)

	ctx := context.Background()
	c.Activate(ctx) // personal step has no Discoverer
	assert.Zero(t, backend.llmModelCalls)

	c.Next(ctx)
	c.Activate(ctx)
	assert.Equal(t, 1, backend.llmModelCalls)

	// Re-activation after Previous/Next round trip stays free.
	c.Previous()
	c.Next(ctx)
	c.Activate(ctx)
	assert.Equal(t, 1, backend.llmModelCalls)
}

func TestTemplatesDiscoverFetchesOnce(t *testing.T) {
	backend := newFakeBackend()
	s := NewTemplatesStep(backend, &recordingNotifier{})

	ctx := context.Background()
	s.Discover(ctx)
	s.Discover(ctx)
	assert.Equal(t, 1, backend.templateCalls)
	assert.Len(t, s.Templates(), 2)
}

package wizard

import (
	"context"
	"errors"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

// fakeBackend counts calls and lets tests script failures per operation.
type fakeBackend struct {
	settings map[string]any
	models   []string
	whisper  api.WhisperModelList

	llmModelCalls     int
	whisperModelCalls int
	templateCalls     int
	letterCalls       int

	savedSettings map[string]any
	savedGlobal   map[string]any
	defaultKey    string
	markCalls     int

	failLLMModels    bool
	failWhisper      bool
	failSaveSettings bool
	failSaveGlobal   bool
}

var errFake = errors.New("backend unavailable")

func newFakeBackend() *fakeBackend {
	return &fakeBackend{settings: map[string]any{}}
}

func (f *fakeBackend) UserSettings(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(f.settings))
	for k, v := range f.settings {
		out[k] = v
	}
	return out, nil
}

func (f *fakeBackend) SaveUserSettings(_ context.Context, s map[string]any) error {
	if f.failSaveSettings {
		return errFake
	}
	f.savedSettings = s
	return nil
}

func (f *fakeBackend) SaveGlobalConfig(_ context.Context, cfg map[string]any) error {
	if f.failSaveGlobal {
		return errFake
	}
	f.savedGlobal = cfg
	return nil
}

func (f *fakeBackend) LLMModels(context.Context, string, string, string) ([]string, error) {
	f.llmModelCalls++
	if f.failLLMModels {
		return nil, errFake
	}
	return f.models, nil
}

func (f *fakeBackend) WhisperModels(context.Context, string) (api.WhisperModelList, error) {
	f.whisperModelCalls++
	if f.failWhisper {
		return api.WhisperModelList{}, errFake
	}
	return f.whisper, nil
}

func (f *fakeBackend) Templates(context.Context) ([]api.Template, error) {
	f.templateCalls++
	return []api.Template{{Key: "soap", Name: "SOAP"}, {Key: "progress", Name: "Progress Note"}}, nil
}

func (f *fakeBackend) LetterTemplates(context.Context) ([]api.LetterTemplate, error) {
	f.letterCalls++
	return []api.LetterTemplate{{ID: 1, Name: "GP Letter"}, {ID: 2, Name: "Specialist Referral"}}, nil
}

func (f *fakeBackend) SetDefaultTemplate(_ context.Context, key string) error {
	f.defaultKey = key
	return nil
}

func (f *fakeBackend) MarkOnboardingComplete(context.Context) error {
	f.markCalls++
	return nil
}

// recordingNotifier captures advisories and errors for assertions.
type recordingNotifier struct {
	advisories []string
	errors     []string
}

func (n *recordingNotifier) Advise(msg string) { n.advisories = append(n.advisories, msg) }
func (n *recordingNotifier) Error(msg string)  { n.errors = append(n.errors, msg) }

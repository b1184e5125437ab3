// Package wizard implements the Phlox onboarding flow: an ordered set of
// setup steps, each owning its own form state behind a small interface,
// driven by a Controller that gates navigation on per-step validation and
// aggregates everything into the server's settings objects on submit.
//
// The package is deliberately free of any TUI dependency so the step and
// controller logic can be tested without a terminal; the bubbletea layer in
// internal/tui/models renders it.
package wizard

import (
	"context"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

// StepID identifies one page of the onboarding wizard. The declaration
// order is the display order; progress and next/previous computation rely
// on it.
type StepID int

const (
	StepPersonal StepID = iota
	StepLLM
	StepTranscription
	StepTemplates
	StepQuickChat
	StepLetters
)

// String returns the stable lowercase name of the step.
func (id StepID) String() string {
	switch id {
	case StepPersonal:
		return "personal"
	case StepLLM:
		return "llm"
	case StepTranscription:
		return "transcription"
	case StepTemplates:
		return "templates"
	case StepQuickChat:
		return "quickchat"
	case StepLetters:
		return "letters"
	default:
		return "unknown"
	}
}

// Descriptor holds the immutable display metadata for a step.
type Descriptor struct {
	Title       string
	Description string
	Icon        string
}

// descriptors is built once at package load and never mutated.
var descriptors = map[StepID]Descriptor{
	StepPersonal: {
		Title:       "About You",
		Description: "Your name and specialty, used to address you and tailor note phrasing.",
		Icon:        "👤",
	},
	StepLLM: {
		Title:       "Language Model",
		Description: "Where Phlox sends notes and letters for drafting.",
		Icon:        "🧠",
	},
	StepTranscription: {
		Title:       "Transcription",
		Description: "Optional speech-to-text endpoint for encounter recordings.",
		Icon:        "🎙",
	},
	StepTemplates: {
		Title:       "Note Template",
		Description: "The default structure for new clinical notes.",
		Icon:        "📋",
	},
	StepQuickChat: {
		Title:       "Quick Chat",
		Description: "Three one-click prompts shown next to every note.",
		Icon:        "💬",
	},
	StepLetters: {
		Title:       "Letters",
		Description: "The default template for generated letters.",
		Icon:        "✉",
	},
}

// Describe returns the display metadata for a step.
func Describe(id StepID) Descriptor {
	return descriptors[id]
}

// allSteps is the static declaration order of every step.
var allSteps = []StepID{
	StepPersonal,
	StepLLM,
	StepTranscription,
	StepTemplates,
	StepQuickChat,
	StepLetters,
}

// Options parameterizes a wizard run. It is passed into the Controller
// constructor rather than read from globals so tests can pin visibility
// deterministically.
type Options struct {
	// ChatEnabled includes the QuickChat step. Decided once at mount; the
	// flag does not change during a session.
	ChatEnabled bool

	// StepOffset counts externally-owned steps (e.g. a pre-wizard
	// encryption setup) that precede this controller's steps in the
	// user-visible progress bar.
	StepOffset int
}

// VisibleSteps computes the ordered step list for the given options.
// Filtering never reorders: the relative order of remaining steps matches
// the static declaration.
func VisibleSteps(opts Options) []StepID {
	visible := make([]StepID, 0, len(allSteps))
	for _, id := range allSteps {
		if id == StepQuickChat && !opts.ChatEnabled {
			continue
		}
		visible = append(visible, id)
	}
	return visible
}

// Step is the contract between the Controller and each step's state
// object. The Controller reads a step only through this interface -- it
// never reaches into step fields directly.
type Step interface {
	// ID returns the step's identifier.
	ID() StepID
	// Validate reports whether the step's captured data is complete
	// enough to proceed. Validators never fail with an error; failure is
	// surfaced as an advisory by the Controller.
	Validate() bool
	// Data returns the fields relevant to final persistence, keyed by the
	// server's user-settings key names. Loading/status flags are excluded.
	// Steps whose output belongs to the global configuration instead
	// return an empty map here and implement GlobalSettings.
	Data() map[string]any
}

// Discoverer is implemented by steps that load selectable options from the
// backend. Discover is called when the step becomes active, and again when
// its dependent input changes; implementations memoize on the exact
// endpoint string so repeated activation is free.
type Discoverer interface {
	Discover(ctx context.Context)
}

// GlobalSettings is implemented by steps whose output belongs in the
// server's global provider/model configuration rather than user settings.
type GlobalSettings interface {
	GlobalData() map[string]any
}

// Backend is the slice of the server API the wizard needs. *api.Client
// satisfies it; tests substitute a fake.
type Backend interface {
	UserSettings(ctx context.Context) (map[string]any, error)
	SaveUserSettings(ctx context.Context, settings map[string]any) error
	SaveGlobalConfig(ctx context.Context, cfg map[string]any) error
	LLMModels(ctx context.Context, provider, baseURL, apiKey string) ([]string, error)
	WhisperModels(ctx context.Context, endpoint string) (api.WhisperModelList, error)
	Templates(ctx context.Context) ([]api.Template, error)
	LetterTemplates(ctx context.Context) ([]api.LetterTemplate, error)
	SetDefaultTemplate(ctx context.Context, key string) error
	MarkOnboardingComplete(ctx context.Context) error
}

// Notifier surfaces wizard advisories to the user. Advise is transient and
// step-scoped (validation failures, discovery failures); Error is the
// blocking notification used for submission failures.
type Notifier interface {
	Advise(msg string)
	Error(msg string)
}

// advisory returns the one-line message shown when a step fails validation.
func advisory(id StepID) string {
	switch id {
	case StepPersonal:
		return "Enter your name and choose a specialty to continue."
	case StepLLM:
		return "Select a primary model to continue."
	case StepTranscription:
		return "Select or enter a transcription model, or clear the endpoint to skip transcription."
	case StepTemplates:
		return "Choose a default note template to continue."
	case StepQuickChat:
		return "All three quick chat buttons need a title and a prompt."
	case StepLetters:
		return "Choose a default letter template to continue."
	default:
		return "This step is not complete yet."
	}
}

package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleSteps(t *testing.T) {
	withChat := VisibleSteps(Options{ChatEnabled: true})
	assert.Equal(t, []StepID{
		StepPersonal, StepLLM, StepTranscription, StepTemplates, StepQuickChat, StepLetters,
	}, withChat)

	withoutChat := VisibleSteps(Options{ChatEnabled: false})
	assert.Equal(t, []StepID{
		StepPersonal, StepLLM, StepTranscription, StepTemplates, StepLetters,
	}, withoutChat)

	// Dropping QuickChat must not reorder the remaining steps.
	j := 0
	for _, id := range withChat {
		if id == StepQuickChat {
			continue
		}
		assert.Equal(t, id, withoutChat[j])
		j++
	}
}

// fillValid drives every step of the controller to a valid state.
func fillValid(t *testing.T, c *Controller) {
	t.Helper()

	personal := c.Step(StepPersonal).(*PersonalStep)
	personal.SetName("Dr. Flox")
	personal.SetSpecialty("Haematology")

	llm := c.Step(StepLLM).(*LLMStep)
	llm.SetEndpoint("http://llm.local:11434")

	transcription := c.Step(StepTranscription).(*TranscriptionStep)
	transcription.SetEndpoint("") // skip transcription

	templates := c.Step(StepTemplates).(*TemplatesStep)
	templates.SetSelectedKey("soap")

	if qc, ok := c.Step(StepQuickChat).(*QuickChatStep); ok && qc != nil {
		qc.SetTitle(0, "Critique")
		qc.SetPrompt(0, "Critique my plan")
		qc.SetTitle(1, "Investigations")
		qc.SetPrompt(1, "Suggest investigations")
		qc.SetTitle(2, "Differentials")
		qc.SetPrompt(2, "List differentials")
	}

	letters := c.Step(StepLetters).(*LettersStep)
	letters.SetSelectedKey("1")
}

func TestNextBlockedByValidator(t *testing.T) {
	backend := newFakeBackend()
	notify := &recordingNotifier{}
	c := New(backend, notify, Options{ChatEnabled: true})

	assert.Equal(t, StepPersonal, c.Current())

	// Name missing: Next is an idempotent no-op plus one advisory per try.
	ok := c.Next(context.Background())
	assert.False(t, ok)
	assert.Equal(t, StepPersonal, c.Current())
	assert.False(t, c.Completed(StepPersonal))
	assert.Len(t, notify.advisories, 1)

	ok = c.Next(context.Background())
	assert.False(t, ok)
	assert.Equal(t, StepPersonal, c.Current())
	assert.Len(t, notify.advisories, 2)
}

func TestPreviousAtFirstStepIsNoOp(t *testing.T) {
	c := New(newFakeBackend(), &recordingNotifier{}, Options{ChatEnabled: true})

	assert.False(t, c.Previous())
	assert.Equal(t, StepPersonal, c.Current())
}

func TestNextAdvancesAndMarksComplete(t *testing.T) {
	backend := newFakeBackend()
	c := New(backend, &recordingNotifier{}, Options{ChatEnabled: true})
	fillValid(t, c)

	require.True(t, c.Next(context.Background()))
	assert.Equal(t, StepLLM, c.Current())
	assert.True(t, c.Completed(StepPersonal))

	// Previous never validates.
	assert.True(t, c.Previous())
	assert.Equal(t, StepPersonal, c.Current())
	assert.True(t, c.Completed(StepPersonal), "completed set only grows")
}

func TestLastStepNextSubmitsExactlyOnce(t *testing.T) {
	backend := newFakeBackend()
	backend.settings["theme"] = "dark" // field the wizard does not own
	notify := &recordingNotifier{}
	c := New(backend, notify, Options{ChatEnabled: true})
	fillValid(t, c)

	ctx := context.Background()
	steps := c.VisibleSteps()
	for range steps {
		require.True(t, c.Next(ctx))
	}

	assert.True(t, c.Submitted())
	assert.Equal(t, 1, backend.markCalls, "exactly one submit per final Next")

	// A stray extra Next after submission must not re-submit.
	c.Next(ctx)
	assert.Equal(t, 1, backend.markCalls)

	// Read-merge-write: foreign fields preserved, step data present.
	require.NotNil(t, backend.savedSettings)
	assert.Equal(t, "dark", backend.savedSettings["theme"])
	assert.Equal(t, "Dr. Flox", backend.savedSettings["name"])
	assert.Equal(t, "Haematology", backend.savedSettings["specialty"])
	assert.Equal(t, 1, backend.savedSettings["default_letter_template_id"])

	// Global configuration is shaped separately.
	require.NotNil(t, backend.savedGlobal)
	assert.Equal(t, "ollama", backend.savedGlobal["LLM_PROVIDER"])
	assert.Equal(t, "http://llm.local:11434", backend.savedGlobal["LLM_BASE_URL"])
	assert.Equal(t, "", backend.savedGlobal["WHISPER_BASE_URL"])

	// Template selection issued the dedicated default call.
	assert.Equal(t, "soap", backend.defaultKey)
}

func TestSubmitFailureAllowsRetry(t *testing.T) {
	backend := newFakeBackend()
	backend.failSaveSettings = true
	notify := &recordingNotifier{}
	c := New(backend, notify, Options{ChatEnabled: false})
	fillValid(t, c)

	ctx := context.Background()
	err := c.Submit(ctx)
	require.Error(t, err)
	assert.False(t, c.Submitting(), "submitting resets so the user can retry")
	assert.False(t, c.Submitted())
	assert.Len(t, notify.errors, 1)
	assert.Zero(t, backend.markCalls, "failure stops the call sequence")

	// Retry after the backend recovers. Earlier writes being re-issued is
	// fine: all writes are idempotent upserts.
	backend.failSaveSettings = false
	require.NoError(t, c.Submit(ctx))
	assert.True(t, c.Submitted())
	assert.Equal(t, 1, backend.markCalls)
}

func TestProgressFraction(t *testing.T) {
	c := New(newFakeBackend(), &recordingNotifier{}, Options{ChatEnabled: true})
	assert.InDelta(t, 1.0/6.0, c.ProgressFraction(), 1e-9)

	// Excluding QuickChat shrinks the denominator.
	c = New(newFakeBackend(), &recordingNotifier{}, Options{ChatEnabled: false})
	assert.InDelta(t, 1.0/5.0, c.ProgressFraction(), 1e-9)

	// An externally-owned pre-step shifts both index and total.
	c = New(newFakeBackend(), &recordingNotifier{}, Options{ChatEnabled: true, StepOffset: 1})
	assert.InDelta(t, 2.0/7.0, c.ProgressFraction(), 1e-9)

	fillValid(t, c)
	require.True(t, c.Next(context.Background()))
	assert.InDelta(t, 3.0/7.0, c.ProgressFraction(), 1e-9)
}

package wizard

import (
	"context"
	"fmt"
)

// Controller orchestrates the onboarding flow: a linear chain over the
// visible steps with one absorbing terminal action (Submit) reached only
// from the last step's successful Next.
type Controller struct {
	backend Backend
	notify  Notifier
	opts    Options

	visible []StepID
	steps   map[StepID]Step

	current    int // index into visible
	completed  map[StepID]bool
	submitting bool
	submitted  bool
}

// New creates a Controller. Step visibility is computed here, once; the
// feature flag does not change during a session.
func New(backend Backend, notify Notifier, opts Options) *Controller {
	c := &Controller{
		backend:   backend,
		notify:    notify,
		opts:      opts,
		visible:   VisibleSteps(opts),
		completed: make(map[StepID]bool),
	}

	c.steps = make(map[StepID]Step, len(c.visible))
	for _, id := range c.visible {
		c.steps[id] = c.newStep(id)
	}
	return c
}

// newStep is the factory constructing each step's state object.
func (c *Controller) newStep(id StepID) Step {
	switch id {
	case StepPersonal:
		return NewPersonalStep()
	case StepLLM:
		return NewLLMStep(c.backend, c.notify)
	case StepTranscription:
		return NewTranscriptionStep(c.backend, c.notify)
	case StepTemplates:
		return NewTemplatesStep(c.backend, c.notify)
	case StepQuickChat:
		return NewQuickChatStep()
	case StepLetters:
		return NewLettersStep(c.backend, c.notify)
	default:
		panic(fmt.Sprintf("wizard: unknown step %d", id))
	}
}

// VisibleSteps returns the ordered step list for this run.
func (c *Controller) VisibleSteps() []StepID {
	return c.visible
}

// Current returns the identifier of the active step.
func (c *Controller) Current() StepID {
	return c.visible[c.current]
}

// CurrentIndex returns the zero-based position of the active step within
// the visible list.
func (c *Controller) CurrentIndex() int {
	return c.current
}

// Step returns the state object for the given step, or nil when the step
// is not visible in this run.
func (c *Controller) Step(id StepID) Step {
	return c.steps[id]
}

// Completed reports whether the user has passed the step's validation at
// least once this session. Used for badge display only, never for gating.
func (c *Controller) Completed(id StepID) bool {
	return c.completed[id]
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	return c.submitting
}

// Submitted reports whether the wizard finished successfully.
func (c *Controller) Submitted() bool {
	return c.submitted
}

// Activate triggers the active step's discovery fetch, if it has one.
// Memoization inside the step makes repeated activation with unchanged
// inputs free.
func (c *Controller) Activate(ctx context.Context) {
	if d, ok := c.steps[c.Current()].(Discoverer); ok {
		d.Discover(ctx)
	}
}

// Next validates the active step. On failure it emits the step's advisory
// and changes nothing, so repeated failed attempts are idempotent. On
// success the step is marked complete and the pointer advances; from the
// last step, Next submits instead. Returns true when validation passed.
func (c *Controller) Next(ctx context.Context) bool {
	if c.submitting || c.submitted {
		return false
	}

	step := c.steps[c.Current()]
	if !step.Validate() {
		c.notify.Advise(advisory(step.ID()))
		return false
	}

	c.completed[step.ID()] = true

	if c.current+1 < len(c.visible) {
		c.current++
		return true
	}

	// Last step: the one absorbing terminal action.
	_ = c.Submit(ctx)
	return true
}

// Previous moves to the prior visible step without validation. No-op at
// the first step; returns whether the pointer moved.
func (c *Controller) Previous() bool {
	if c.current == 0 {
		return false
	}
	c.current--
	return true
}

// ProgressFraction returns (index of current step + 1) / total, where
// total includes any externally-owned steps counted by Options.StepOffset.
func (c *Controller) ProgressFraction() float64 {
	total := len(c.visible) + c.opts.StepOffset
	if total == 0 {
		return 0
	}
	return float64(c.current+1+c.opts.StepOffset) / float64(total)
}

// Submit aggregates every visible step's data and persists it:
//
//  1. fetch the latest persisted user settings (read-merge-write, so
//     fields the wizard does not own survive);
//  2. shallow-merge each step's Data() on top, step data winning;
//  3. save the merged user settings;
//  4. save the global provider/model configuration assembled from steps
//     implementing GlobalSettings;
//  5. set the default note template when one was chosen;
//  6. mark onboarding complete.
//
// The sequence is not transactional: every write is an idempotent upsert,
// so a retry after partial failure may redundantly re-save fields, which
// is safe. On any failure the user sees one blocking error notification
// and submitting resets so the attempt can be repeated.
func (c *Controller) Submit(ctx context.Context) error {
	if c.submitting || c.submitted {
		return nil
	}
	c.submitting = true

	err := c.submit(ctx)
	c.submitting = false
	if err != nil {
		c.notify.Error("Saving your settings failed: " + err.Error())
		return err
	}

	c.submitted = true
	return nil
}

func (c *Controller) submit(ctx context.Context) error {
	settings, err := c.backend.UserSettings(ctx)
	if err != nil {
		return fmt.Errorf("fetching current settings: %w", err)
	}
	if settings == nil {
		settings = make(map[string]any)
	}

	global := make(map[string]any)
	for _, id := range c.visible {
		step := c.steps[id]
		for k, v := range step.Data() {
			settings[k] = v
		}
		if g, ok := step.(GlobalSettings); ok {
			for k, v := range g.GlobalData() {
				global[k] = v
			}
		}
	}

	if err := c.backend.SaveUserSettings(ctx, settings); err != nil {
		return fmt.Errorf("saving user settings: %w", err)
	}
	if err := c.backend.SaveGlobalConfig(ctx, global); err != nil {
		return fmt.Errorf("saving global configuration: %w", err)
	}

	if ts, ok := c.steps[StepTemplates].(*TemplatesStep); ok && ts.SelectedKey() != "" {
		if err := c.backend.SetDefaultTemplate(ctx, ts.SelectedKey()); err != nil {
			return fmt.Errorf("setting default template: %w", err)
		}
	}

	if err := c.backend.MarkOnboardingComplete(ctx); err != nil {
		return fmt.Errorf("marking onboarding complete: %w", err)
	}
	return nil
}

package models

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodworks-io/phlox-cli/internal/tui/components"
	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
	"github.com/bloodworks-io/phlox-cli/internal/wizard"
)

// ---------------------------------------------------------------------------
// Screens and messages
// ---------------------------------------------------------------------------

// onboardingScreen selects which page the model renders: the welcome banner
// before the wizard proper, the step pages, or the final summary.
type onboardingScreen int

const (
	screenWelcome onboardingScreen = iota
	screenSteps
	screenDone
)

// stepReadyMsg arrives when the active step's discovery fetch finished.
type stepReadyMsg struct{}

// advanceDoneMsg arrives when an Activate+Next round trip finished. The
// submit (from the last step) happens inside the same command.
type advanceDoneMsg struct{}

// ---------------------------------------------------------------------------
// Notifier bridge
// ---------------------------------------------------------------------------

// queueNotifier collects wizard notifications emitted inside tea commands so
// Update can turn them into toasts on the next message. Guarded by a mutex
// because commands run off the Update goroutine.
type queueNotifier struct {
	mu   sync.Mutex
	msgs []components.ShowToastMsg
}

func (n *queueNotifier) Advise(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, components.ShowToastMsg{Text: msg, Level: components.ToastWarn})
}

func (n *queueNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, components.ShowToastMsg{Text: msg, Level: components.ToastError})
}

// drain returns the queued notifications, blocking errors first so they are
// never masked by a later advisory.
func (n *queueNotifier) drain() []components.ShowToastMsg {
	n.mu.Lock()
	defer n.mu.Unlock()
	msgs := n.msgs
	n.msgs = nil
	for i, m := range msgs {
		if m.Level == components.ToastError && i > 0 {
			msgs[0], msgs[i] = msgs[i], msgs[0]
			break
		}
	}
	return msgs
}

// ---------------------------------------------------------------------------
// OnboardingModel
// ---------------------------------------------------------------------------

// OnboardingModel implements tea.Model for `phlox setup`. Navigation,
// validation, and persistence live in wizard.Controller; this model owns
// only terminal concerns: inputs, cursors, and rendering.
type OnboardingModel struct {
	controller *wizard.Controller
	notify     *queueNotifier
	serverURL  string

	screen onboardingScreen
	busy   bool   // a command owns the controller; keys are ignored
	action string // what the busy spinner says

	spin  spinner.Model
	toast components.Toast

	inputs  []textinput.Model
	focused int // index into the active step's field list
	cursor  int // option-list cursor for the active step

	discovered string // discovery inputs the current options were fetched for

	confirmQuit bool
	quitDialog  components.ConfirmDialog

	width  int
	height int
}

// NewOnboardingModel creates the setup wizard model. The welcome banner
// counts as one externally-owned step in the progress bar, hence the
// StepOffset.
func NewOnboardingModel(backend wizard.Backend, serverURL string, chatEnabled bool) OnboardingModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	notify := &queueNotifier{}
	controller := wizard.New(backend, notify, wizard.Options{
		ChatEnabled: chatEnabled,
		StepOffset:  1,
	})

	m := OnboardingModel{
		controller: controller,
		notify:     notify,
		serverURL:  serverURL,
		screen:     screenWelcome,
		spin:       s,
		width:      80,
		height:     40,
	}
	m.rebuildFields()
	return m
}

// Finished reports whether the wizard submitted successfully, read by the
// command wrapper after the program exits.
func (m OnboardingModel) Finished() bool {
	return m.controller.Submitted()
}

// ---------------------------------------------------------------------------
// tea.Model interface
// ---------------------------------------------------------------------------

// Init is called when the program starts.
func (m OnboardingModel) Init() tea.Cmd {
	return nil
}

// Update processes messages and key events.
func (m OnboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width < 60 {
			m.width = 60
		}
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stepReadyMsg:
		m.busy = false
		focused := m.focused
		m.rebuildFields()
		m.focusField(focused)
		m.discovered = m.discoveryKey()
		return m, m.showNotifications()

	case advanceDoneMsg:
		m.busy = false
		if m.controller.Submitted() {
			m.screen = screenDone
			return m, m.showNotifications()
		}
		m.rebuildFields()
		// Prefetch the (possibly new) step's options. Memoization makes
		// this free when nothing changed.
		cmds := []tea.Cmd{m.showNotifications(), m.activate("Loading options")}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.toast = m.toast.Update(msg)
	return m, nil
}

// View renders the current screen.
func (m OnboardingModel) View() string {
	switch m.screen {
	case screenWelcome:
		return m.viewWelcome()
	case screenDone:
		return m.viewDone()
	}

	var sections []string

	progress := components.ProgressStep{
		Steps:     m.progressLabels(),
		Current:   m.controller.CurrentIndex() + 1, // welcome occupies slot 0
		Completed: m.completedIndexes(),
		Width:     m.width,
	}
	sections = append(sections, "")
	sections = append(sections, "  "+progress.Render())
	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(clampWidth(m.width-4, 76)))
	sections = append(sections, "")

	desc := wizard.Describe(m.controller.Current())
	sections = append(sections, "  "+styles.Title.Render(desc.Icon+" "+desc.Title))
	sections = append(sections, "  "+styles.Subtitle.Render(desc.Description))
	sections = append(sections, "")

	if m.busy {
		sections = append(sections, "  "+m.spin.View()+" "+styles.Dim(m.action+"..."))
	} else {
		sections = append(sections, m.viewStepBody())
	}

	if m.toast.Visible() {
		sections = append(sections, "")
		sections = append(sections, "  "+m.toast.View())
	}

	if m.confirmQuit {
		sections = append(sections, "")
		sections = append(sections, "  "+m.quitDialog.View())
	}

	sections = append(sections, "")
	sections = append(sections, "  "+styles.Divider(clampWidth(m.width-4, 76)))
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// ---------------------------------------------------------------------------
// Controller commands
// ---------------------------------------------------------------------------

// activate runs the active step's discovery fetch off the Update goroutine.
func (m *OnboardingModel) activate(action string) tea.Cmd {
	m.busy = true
	m.action = action
	c := m.controller
	fetch := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		c.Activate(ctx)
		return stepReadyMsg{}
	}
	return tea.Batch(m.spin.Tick, fetch)
}

// advance re-runs discovery (free when memoized) and then attempts Next,
// which submits from the last step.
func (m *OnboardingModel) advance() tea.Cmd {
	m.busy = true
	m.action = "Checking"
	if m.controller.CurrentIndex() == len(m.controller.VisibleSteps())-1 {
		m.action = "Saving your settings"
	}
	c := m.controller
	run := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		c.Activate(ctx)
		c.Next(ctx)
		return advanceDoneMsg{}
	}
	return tea.Batch(m.spin.Tick, run)
}

// discoveryKey identifies the inputs the active step's discovery depends
// on. Empty for steps without an endpoint field.
func (m *OnboardingModel) discoveryKey() string {
	switch m.controller.Current() {
	case wizard.StepLLM:
		step := m.step().(*wizard.LLMStep)
		return step.Provider() + "|" + step.Endpoint() + "|" + step.APIKey()
	case wizard.StepTranscription:
		return m.step().(*wizard.TranscriptionStep).Endpoint()
	}
	return ""
}

// maybeRefresh re-runs discovery when a committed endpoint no longer
// matches what the current options were fetched for, so leaving the
// field with tab behaves like enter.
func (m *OnboardingModel) maybeRefresh() tea.Cmd {
	key := m.discoveryKey()
	if key == "" || key == m.discovered {
		return nil
	}
	return m.activate("Checking endpoint")
}

// askQuit opens the quit confirmation dialog.
func (m *OnboardingModel) askQuit() {
	m.confirmQuit = true
	m.quitDialog = components.NewConfirmDialog("Quit setup?", "Nothing has been saved to the server yet.")
}

// showNotifications turns queued wizard notifications into a toast. Only
// the most relevant one is shown; the rest would flicker past unread.
func (m *OnboardingModel) showNotifications() tea.Cmd {
	msgs := m.notify.drain()
	if len(msgs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.toast, cmd = m.toast.Show(msgs[0])
	return cmd
}

// ---------------------------------------------------------------------------
// Key handling
// ---------------------------------------------------------------------------

func (m OnboardingModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.confirmQuit {
		var cmd tea.Cmd
		m.quitDialog, cmd = m.quitDialog.Update(msg)
		if m.quitDialog.Done {
			if m.quitDialog.Confirmed {
				return m, tea.Quit
			}
			m.confirmQuit = false
		}
		return m, cmd
	}

	// A blocking toast eats the next keypress.
	if m.toast.Blocking() {
		m.toast = m.toast.Dismiss()
		return m, nil
	}

	if m.busy {
		return m, nil
	}

	switch m.screen {
	case screenWelcome:
		switch key {
		case "enter":
			m.screen = screenSteps
			return m, m.activate("Loading options")
		case "q", "esc":
			m.askQuit()
		}
		return m, nil

	case screenDone:
		if key == "enter" || key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	// Step screens.
	switch key {
	case "esc":
		m.commitInputs()
		if !m.controller.Previous() {
			m.askQuit()
			return m, nil
		}
		m.rebuildFields()
		return m, m.activate("Loading options")

	case "enter":
		m.commitInputs()
		return m, m.advance()

	case "tab":
		m.commitInputs()
		refresh := m.maybeRefresh()
		m.focusField(m.focused + 1)
		return m, tea.Batch(textinput.Blink, refresh)

	case "shift+tab":
		m.commitInputs()
		refresh := m.maybeRefresh()
		m.focusField(m.focused - 1)
		return m, tea.Batch(textinput.Blink, refresh)
	}

	return m.handleStepKey(msg)
}

// handleStepKey routes remaining keys to the active step's fields.
func (m OnboardingModel) handleStepKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.controller.Current() {
	case wizard.StepPersonal:
		step := m.step().(*wizard.PersonalStep)
		// Field 0 is the name input, field 1 the specialty picker.
		if m.focused == 1 {
			if moved := m.moveCursor(key, len(wizard.Specialties)); moved {
				step.SetSpecialty(wizard.Specialties[m.cursor])
				return m, nil
			}
			return m, nil
		}
		return m.updateFocusedInput(msg)

	case wizard.StepLLM:
		step := m.step().(*wizard.LLMStep)
		switch m.focused {
		case 0: // provider picker
			if moved := m.moveCursor(key, len(wizard.LLMProviders)); moved {
				step.SetProvider(wizard.LLMProviders[m.cursor])
				return m, nil
			}
			return m, nil
		case 3: // model picker, present once discovery returned models
			if moved := m.moveCursor(key, len(step.Models())); moved {
				step.SetPrimaryModel(step.Models()[m.cursor])
				return m, nil
			}
			return m, nil
		}
		return m.updateFocusedInput(msg)

	case wizard.StepTranscription:
		step := m.step().(*wizard.TranscriptionStep)
		if m.focused == 1 && step.ListAvailable() && len(step.Models()) > 0 {
			if moved := m.moveCursor(key, len(step.Models())); moved {
				step.SetModel(step.Models()[m.cursor])
				return m, nil
			}
			return m, nil
		}
		return m.updateFocusedInput(msg)

	case wizard.StepTemplates:
		step := m.step().(*wizard.TemplatesStep)
		if moved := m.moveCursor(key, len(step.Templates())); moved {
			step.SetSelectedKey(step.Templates()[m.cursor].Key)
		}
		return m, nil

	case wizard.StepQuickChat:
		return m.updateFocusedInput(msg)

	case wizard.StepLetters:
		step := m.step().(*wizard.LettersStep)
		if moved := m.moveCursor(key, len(step.Templates())); moved {
			m.cursorToLetter(step)
		}
		return m, nil
	}

	return m, nil
}

// moveCursor applies up/down navigation to the option cursor. Returns true
// when the key was a navigation key, even at the list edge.
func (m *OnboardingModel) moveCursor(key string, count int) bool {
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return true
	case "down", "j":
		if m.cursor < count-1 {
			m.cursor++
		}
		return true
	}
	return false
}

func (m *OnboardingModel) cursorToLetter(step *wizard.LettersStep) {
	templates := step.Templates()
	if m.cursor >= 0 && m.cursor < len(templates) {
		step.SetSelectedKey(fmt.Sprintf("%d", templates[m.cursor].ID))
	}
}

func (m OnboardingModel) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	idx := m.inputIndex()
	if idx < 0 || idx >= len(m.inputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	m.commitInputs()
	return m, cmd
}

// ---------------------------------------------------------------------------
// Field plumbing
// ---------------------------------------------------------------------------

func (m *OnboardingModel) step() wizard.Step {
	return m.controller.Step(m.controller.Current())
}

// fieldCount returns how many focusable fields the active step has.
func (m *OnboardingModel) fieldCount() int {
	switch m.controller.Current() {
	case wizard.StepPersonal:
		return 2 // name, specialty
	case wizard.StepLLM:
		step := m.step().(*wizard.LLMStep)
		if len(step.Models()) > 0 {
			return 4 // provider, endpoint, api key, model
		}
		return 3
	case wizard.StepTranscription:
		return 2 // endpoint, model (list or free text)
	case wizard.StepQuickChat:
		return 6
	default:
		return 1 // single picker
	}
}

// inputIndex maps the focused field to its position in m.inputs, or -1 when
// the focused field is a picker.
func (m *OnboardingModel) inputIndex() int {
	switch m.controller.Current() {
	case wizard.StepPersonal:
		if m.focused == 0 {
			return 0
		}
		return -1
	case wizard.StepLLM:
		switch m.focused {
		case 1:
			return 0 // endpoint
		case 2:
			return 1 // api key
		}
		return -1
	case wizard.StepTranscription:
		step := m.step().(*wizard.TranscriptionStep)
		if m.focused == 0 {
			return 0
		}
		if !step.ListAvailable() || len(step.Models()) == 0 {
			return 1 // free-text model entry
		}
		return -1
	case wizard.StepQuickChat:
		return m.focused
	default:
		return -1
	}
}

// focusField moves focus, wrapping, and manages textinput focus state.
func (m *OnboardingModel) focusField(to int) {
	count := m.fieldCount()
	if count == 0 {
		return
	}
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focused = ((to % count) + count) % count
	m.syncCursor()
	if idx := m.inputIndex(); idx >= 0 && idx < len(m.inputs) {
		m.inputs[idx].Focus()
	}
}

// syncCursor points the option cursor at the step's current selection when
// focus lands on a picker field.
func (m *OnboardingModel) syncCursor() {
	m.cursor = 0
	switch m.controller.Current() {
	case wizard.StepPersonal:
		step := m.step().(*wizard.PersonalStep)
		m.cursor = indexOf(wizard.Specialties, step.Specialty())
	case wizard.StepLLM:
		step := m.step().(*wizard.LLMStep)
		if m.focused == 0 {
			m.cursor = indexOf(wizard.LLMProviders, step.Provider())
		} else {
			m.cursor = indexOf(step.Models(), step.PrimaryModel())
		}
	case wizard.StepTranscription:
		step := m.step().(*wizard.TranscriptionStep)
		m.cursor = indexOf(step.Models(), step.Model())
	case wizard.StepTemplates:
		step := m.step().(*wizard.TemplatesStep)
		for i, t := range step.Templates() {
			if t.Key == step.SelectedKey() {
				m.cursor = i
			}
		}
	case wizard.StepLetters:
		step := m.step().(*wizard.LettersStep)
		for i, t := range step.Templates() {
			if fmt.Sprintf("%d", t.ID) == step.SelectedKey() {
				m.cursor = i
			}
		}
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// commitInputs writes current textinput values back into the active step.
func (m *OnboardingModel) commitInputs() {
	switch m.controller.Current() {
	case wizard.StepPersonal:
		if len(m.inputs) > 0 {
			m.step().(*wizard.PersonalStep).SetName(m.inputs[0].Value())
		}
	case wizard.StepLLM:
		step := m.step().(*wizard.LLMStep)
		if len(m.inputs) > 1 {
			step.SetEndpoint(m.inputs[0].Value())
			step.SetAPIKey(m.inputs[1].Value())
		}
	case wizard.StepTranscription:
		step := m.step().(*wizard.TranscriptionStep)
		if len(m.inputs) > 0 {
			step.SetEndpoint(m.inputs[0].Value())
		}
		if len(m.inputs) > 1 && (!step.ListAvailable() || len(step.Models()) == 0) {
			step.SetModel(m.inputs[1].Value())
		}
	case wizard.StepQuickChat:
		step := m.step().(*wizard.QuickChatStep)
		for i := 0; i < len(m.inputs) && i < 6; i++ {
			if i%2 == 0 {
				step.SetTitle(i/2, m.inputs[i].Value())
			} else {
				step.SetPrompt(i/2, m.inputs[i].Value())
			}
		}
	}
}

// rebuildFields reconstructs inputs and cursors from the active step's
// state, called whenever the active step or its option lists change.
func (m *OnboardingModel) rebuildFields() {
	m.inputs = nil
	m.focused = 0

	switch m.controller.Current() {
	case wizard.StepPersonal:
		step := m.step().(*wizard.PersonalStep)
		name := newInput("Dr. Jane Doe", 40, false)
		name.SetValue(step.Name())
		m.inputs = []textinput.Model{name}

	case wizard.StepLLM:
		step := m.step().(*wizard.LLMStep)
		endpoint := newInput("http://localhost:11434", 48, false)
		endpoint.SetValue(step.Endpoint())
		apiKey := newInput("API key (optional)", 48, true)
		apiKey.SetValue(step.APIKey())
		m.inputs = []textinput.Model{endpoint, apiKey}

	case wizard.StepTranscription:
		step := m.step().(*wizard.TranscriptionStep)
		endpoint := newInput("http://localhost:8000 (leave empty to skip)", 48, false)
		endpoint.SetValue(step.Endpoint())
		model := newInput("model name, e.g. medium", 32, false)
		model.SetValue(step.Model())
		m.inputs = []textinput.Model{endpoint, model}

	case wizard.StepQuickChat:
		step := m.step().(*wizard.QuickChatStep)
		for slot := range 3 {
			title := newInput("Button title", 36, false)
			title.SetValue(step.Title(slot))
			prompt := newInput("Prompt sent to the model", 56, false)
			prompt.SetValue(step.Prompt(slot))
			m.inputs = append(m.inputs, title, prompt)
		}
	}

	m.focusField(0)
}

// newInput builds a textinput with the shared styling.
func newInput(placeholder string, width int, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = width
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.TextPrimary)
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return ti
}

func indexOf(list []string, v string) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return 0
}

// ---------------------------------------------------------------------------
// Progress helpers
// ---------------------------------------------------------------------------

func (m OnboardingModel) progressLabels() []string {
	labels := []string{"Welcome"}
	for _, id := range m.controller.VisibleSteps() {
		labels = append(labels, wizard.Describe(id).Title)
	}
	return labels
}

func (m OnboardingModel) completedIndexes() map[int]bool {
	done := map[int]bool{0: true} // welcome is behind us on step screens
	for i, id := range m.controller.VisibleSteps() {
		if m.controller.Completed(id) {
			done[i+1] = true
		}
	}
	return done
}

// ---------------------------------------------------------------------------
// View renderers
// ---------------------------------------------------------------------------

func (m OnboardingModel) viewWelcome() string {
	var b strings.Builder

	b.WriteString(styles.Logo())
	b.WriteString("\n\n")

	tagline := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Italic(true).
		Render("Clinical notes with your own models")
	b.WriteString("  " + tagline + "\n\n")

	server := styles.Label.Render("Server  ") + styles.Value.Render(m.serverURL)
	b.WriteString("  " + server + "\n\n")

	prompt := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render("Press Enter to begin setup")
	b.WriteString("  " + prompt + "\n")

	if m.confirmQuit {
		b.WriteString("\n  " + m.quitDialog.View() + "\n")
	}

	return b.String()
}

func (m OnboardingModel) viewStepBody() string {
	switch m.controller.Current() {
	case wizard.StepPersonal:
		return m.viewPersonal()
	case wizard.StepLLM:
		return m.viewLLM()
	case wizard.StepTranscription:
		return m.viewTranscription()
	case wizard.StepTemplates:
		step := m.step().(*wizard.TemplatesStep)
		var lines []string
		for i, t := range step.Templates() {
			lines = append(lines, m.optionLine(t.Name, t.Key == step.SelectedKey(), i == m.cursor && m.focused == 0))
		}
		return m.viewPickerStep("Default note template", lines, len(step.Templates()) == 0)
	case wizard.StepQuickChat:
		return m.viewQuickChat()
	case wizard.StepLetters:
		step := m.step().(*wizard.LettersStep)
		var lines []string
		for i, t := range step.Templates() {
			selected := fmt.Sprintf("%d", t.ID) == step.SelectedKey()
			lines = append(lines, m.optionLine(t.Name, selected, i == m.cursor && m.focused == 0))
		}
		return m.viewPickerStep("Default letter template", lines, len(step.Templates()) == 0)
	}
	return ""
}

func (m OnboardingModel) viewPersonal() string {
	step := m.step().(*wizard.PersonalStep)
	var b strings.Builder

	b.WriteString(m.fieldLabel("Name", m.focused == 0) + "\n")
	if len(m.inputs) > 0 {
		b.WriteString("  " + m.inputs[0].View() + "\n\n")
	}

	b.WriteString(m.fieldLabel("Specialty", m.focused == 1) + "\n")
	for i, sp := range wizard.Specialties {
		b.WriteString(m.optionLine(sp, sp == step.Specialty(), i == m.cursor && m.focused == 1) + "\n")
	}

	return b.String()
}

func (m OnboardingModel) viewLLM() string {
	step := m.step().(*wizard.LLMStep)
	var b strings.Builder

	b.WriteString(m.fieldLabel("Provider", m.focused == 0) + "\n")
	for i, p := range wizard.LLMProviders {
		b.WriteString(m.optionLine(p, p == step.Provider(), i == m.cursor && m.focused == 0) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.fieldLabel("Endpoint", m.focused == 1) + "\n")
	if len(m.inputs) > 0 {
		b.WriteString("  " + m.inputs[0].View() + "\n\n")
	}
	b.WriteString(m.fieldLabel("API key", m.focused == 2) + "\n")
	if len(m.inputs) > 1 {
		b.WriteString("  " + m.inputs[1].View() + "\n\n")
	}

	if models := step.Models(); len(models) > 0 {
		b.WriteString(m.fieldLabel("Primary model", m.focused == 3) + "\n")
		for i, model := range models {
			b.WriteString(m.optionLine(model, model == step.PrimaryModel(), i == m.cursor && m.focused == 3) + "\n")
		}
	} else {
		b.WriteString("  " + styles.Dim("No model list from this endpoint. Press Enter to check it, or continue with the server default.") + "\n")
	}

	return b.String()
}

func (m OnboardingModel) viewTranscription() string {
	step := m.step().(*wizard.TranscriptionStep)
	var b strings.Builder

	b.WriteString(m.fieldLabel("Whisper endpoint", m.focused == 0) + "\n")
	if len(m.inputs) > 0 {
		b.WriteString("  " + m.inputs[0].View() + "\n\n")
	}

	if step.Endpoint() == "" {
		b.WriteString("  " + styles.Dim("Leave the endpoint empty to skip transcription.") + "\n")
		return b.String()
	}

	if step.ListAvailable() && len(step.Models()) > 0 {
		b.WriteString(m.fieldLabel("Model", m.focused == 1) + "\n")
		for i, model := range step.Models() {
			b.WriteString(m.optionLine(model, model == step.Model(), i == m.cursor && m.focused == 1) + "\n")
		}
	} else {
		b.WriteString(m.fieldLabel("Model (manual entry)", m.focused == 1) + "\n")
		if len(m.inputs) > 1 {
			b.WriteString("  " + m.inputs[1].View() + "\n")
		}
		b.WriteString("  " + styles.Dim("This endpoint does not list its models.") + "\n")
	}

	return b.String()
}

func (m OnboardingModel) viewQuickChat() string {
	var b strings.Builder

	for slot := range 3 {
		b.WriteString("  " + styles.Subtitle.Render(fmt.Sprintf("Button %d", slot+1)) + "\n")
		ti := slot * 2
		b.WriteString(m.fieldLabel("Title", m.focused == ti) + "\n")
		if ti < len(m.inputs) {
			b.WriteString("  " + m.inputs[ti].View() + "\n")
		}
		b.WriteString(m.fieldLabel("Prompt", m.focused == ti+1) + "\n")
		if ti+1 < len(m.inputs) {
			b.WriteString("  " + m.inputs[ti+1].View() + "\n\n")
		}
	}

	return b.String()
}

func (m OnboardingModel) viewPickerStep(label string, lines []string, empty bool) string {
	var b strings.Builder
	b.WriteString(m.fieldLabel(label, true) + "\n")
	if empty {
		b.WriteString("  " + styles.Dim("Nothing fetched from the server yet. Press Enter to retry.") + "\n")
		return b.String()
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m OnboardingModel) viewDone() string {
	var b strings.Builder

	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render("Setup complete!") + "\n\n")

	personal := m.controller.Step(wizard.StepPersonal).(*wizard.PersonalStep)
	llm := m.controller.Step(wizard.StepLLM).(*wizard.LLMStep)
	transcription := m.controller.Step(wizard.StepTranscription).(*wizard.TranscriptionStep)

	var summary strings.Builder
	summary.WriteString(styles.Label.Render("NAME     ") + "  " + styles.Value.Render(strings.TrimSpace(personal.Name())) + "\n")
	summary.WriteString(styles.Label.Render("SPECIALTY") + "  " + styles.Value.Render(personal.Specialty()) + "\n")

	model := llm.PrimaryModel()
	if model == "" {
		model = "server default"
	}
	summary.WriteString(styles.Label.Render("MODEL    ") + "  " + styles.Value.Render(llm.Provider()+" / "+model) + "\n")

	dictation := "disabled"
	if transcription.Endpoint() != "" {
		dictation = transcription.Endpoint()
	}
	summary.WriteString(styles.Label.Render("DICTATION") + "  " + styles.Value.Render(dictation))

	panelStyle := styles.Panel.
		Border(styles.DoubleBorder).
		BorderForeground(styles.AccentPrimary).
		Width(clampWidth(m.width-6, 60))
	b.WriteString("  " + panelStyle.Render(summary.String()) + "\n\n")

	nextCmd := lipgloss.NewStyle().
		Foreground(styles.AccentPrimary).
		Bold(true).
		Render("phlox record")
	b.WriteString("  Run " + nextCmd + " to capture your first encounter.\n\n")
	b.WriteString("  Press Enter to exit.\n")

	return b.String()
}

// ---------------------------------------------------------------------------
// Small render helpers
// ---------------------------------------------------------------------------

func (m OnboardingModel) fieldLabel(label string, focused bool) string {
	color := styles.TextSecondary
	if focused {
		color = styles.AccentPrimary
	}
	return "  " + lipgloss.NewStyle().Foreground(color).Bold(true).Render(label)
}

func (m OnboardingModel) optionLine(label string, selected, underCursor bool) string {
	cursor := "  "
	if underCursor {
		cursor = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true).Render("> ")
	}
	mark := lipgloss.NewStyle().Foreground(styles.TextMuted).Render("( )")
	if selected {
		mark = lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render("(•)")
	}
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextPrimary)
	if underCursor {
		labelStyle = lipgloss.NewStyle().Foreground(styles.AccentPrimary).Bold(true)
	}
	return "  " + cursor + mark + " " + labelStyle.Render(label)
}

func (m OnboardingModel) renderFooter() string {
	return components.WizardFooter(m.width).Render()
}

func clampWidth(val, max int) int {
	if val > max {
		return max
	}
	if val < 10 {
		return 10
	}
	return val
}

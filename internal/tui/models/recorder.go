package models

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/bloodworks-io/phlox-cli/internal/api"
	"github.com/bloodworks-io/phlox-cli/internal/recorder"
	"github.com/bloodworks-io/phlox-cli/internal/tui/components"
	"github.com/bloodworks-io/phlox-cli/internal/tui/styles"
)

// levelHistory is how many meter samples the sparkline keeps.
const levelHistory = 48

// recTickMsg drives the elapsed timer and the level meter while recording.
type recTickMsg time.Time

// startDoneMsg reports the capture process start.
type startDoneMsg struct{ err error }

// sendDoneMsg reports the upload and scribe processing result.
type sendDoneMsg struct {
	resp *api.TranscribeResponse
	err  error
}

// RecorderModel implements tea.Model for `phlox record`: a live capture
// session with pause/resume, followed by upload and a rendered scribe note.
type RecorderModel struct {
	session   *recorder.Session
	uploader  recorder.Uploader
	serverURL string

	patient textinput.Model
	spin    spinner.Model
	toast   components.Toast

	levels  []float64
	sending bool
	result  string // glamour-rendered note, set once the upload returns
	resp    *api.TranscribeResponse

	confirmQuit bool
	quitDialog  components.ConfirmDialog
	fatal       error

	width  int
	height int
}

// NewRecorderModel creates the recording session model. The session must be
// idle; Init starts the capture.
func NewRecorderModel(session *recorder.Session, uploader recorder.Uploader, serverURL string) RecorderModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.AccentPrimary)

	patient := newInput("Last, First (optional)", 40, false)

	return RecorderModel{
		session:   session,
		uploader:  uploader,
		serverURL: serverURL,
		patient:   patient,
		spin:      s,
		levels:    make([]float64, levelHistory),
		width:     80,
		height:    24,
	}
}

// FatalErr returns the error that ended the session prematurely, if any, so
// the command wrapper can exit nonzero.
func (m RecorderModel) FatalErr() error { return m.fatal }

// Response returns the scribe output once the recording was sent.
func (m RecorderModel) Response() *api.TranscribeResponse { return m.resp }

// Init starts the capture process.
func (m RecorderModel) Init() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		return startDoneMsg{err: session.Start(context.Background())}
	}
}

// Update processes messages and key events.
func (m RecorderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case startDoneMsg:
		if msg.err != nil {
			m.fatal = msg.err
			return m, tea.Quit
		}
		return m, m.tick()

	case recTickMsg:
		if m.session.State() == recorder.StateRecording {
			m.pushLevel()
		}
		switch m.session.State() {
		case recorder.StateRecording, recorder.StatePaused:
			return m, m.tick()
		}
		return m, nil

	case sendDoneMsg:
		m.sending = false
		if msg.err != nil {
			var cmd tea.Cmd
			m.toast, cmd = m.toast.Show(components.ShowToastMsg{
				Text:  "Sending failed: " + msg.err.Error(),
				Level: components.ToastError,
			})
			return m, cmd
		}
		m.resp = msg.resp
		m.result = renderScribeNote(msg.resp, m.width)
		return m, nil

	case spinner.TickMsg:
		if m.sending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	m.toast = m.toast.Update(msg)
	return m, nil
}

func (m RecorderModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.abandon()
		return m, tea.Quit
	}

	if m.confirmQuit {
		var cmd tea.Cmd
		m.quitDialog, cmd = m.quitDialog.Update(msg)
		if m.quitDialog.Done {
			if m.quitDialog.Confirmed {
				m.abandon()
				return m, tea.Quit
			}
			m.confirmQuit = false
		}
		return m, cmd
	}

	if m.toast.Blocking() {
		m.toast = m.toast.Dismiss()
		return m, nil
	}

	if m.sending {
		return m, nil
	}

	// Result screen: the note is on screen, any exit key leaves.
	if m.result != "" {
		if key == "enter" || key == "q" || key == "esc" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.session.State() {
	case recorder.StateRecording, recorder.StatePaused:
		switch key {
		case " ":
			if m.session.State() == recorder.StateRecording {
				m.reportErr(m.session.Pause())
			} else {
				m.reportErr(m.session.Resume())
			}
			return m, nil
		case "s":
			m.reportErr(m.session.Stop())
			return m, textinput.Blink
		case "q", "esc":
			m.askDiscard()
			return m, nil
		}
		return m, nil

	case recorder.StateStopped:
		switch key {
		case "enter":
			return m.send()
		case "r":
			m.abandon()
			return m, tea.Quit
		case "q", "esc":
			m.askDiscard()
			return m, nil
		default:
			var cmd tea.Cmd
			m.patient, cmd = m.patient.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

// send uploads the stopped recording off the Update goroutine.
func (m RecorderModel) send() (tea.Model, tea.Cmd) {
	m.sending = true
	session := m.session
	uploader := m.uploader
	details := api.PatientDetails{Name: strings.TrimSpace(m.patient.Value())}

	upload := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		resp, err := session.Send(ctx, uploader, details)
		return sendDoneMsg{resp: resp, err: err}
	}
	return m, tea.Batch(m.spin.Tick, upload)
}

// askDiscard opens the discard confirmation dialog.
func (m *RecorderModel) askDiscard() {
	m.confirmQuit = true
	m.quitDialog = components.NewConfirmDialog("Discard recording?", "The audio file will be deleted.")
}

// abandon stops a live capture and removes the file. Discarded encounters
// must not linger on disk where the auto-send watcher would pick them up.
func (m *RecorderModel) abandon() {
	switch m.session.State() {
	case recorder.StateRecording, recorder.StatePaused:
		_ = m.session.Stop()
	}
	if m.session.State() == recorder.StateStopped && m.session.Path() != "" {
		_ = os.Remove(m.session.Path())
	}
}

func (m *RecorderModel) reportErr(err error) {
	if err == nil {
		return
	}
	m.toast, _ = m.toast.Show(components.ShowToastMsg{
		Text:  err.Error(),
		Level: components.ToastWarn,
	})
}

func (m *RecorderModel) tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return recTickMsg(t)
	})
}

// pushLevel appends a simulated meter sample. The capture process owns the
// audio device, so the meter shows activity rather than true amplitude.
func (m *RecorderModel) pushLevel() {
	last := 0.5
	if n := len(m.levels); n > 0 {
		last = m.levels[n-1]
	}
	next := last + (rand.Float64()-0.5)*0.4
	if next < 0.05 {
		next = 0.05
	}
	if next > 1.0 {
		next = 1.0
	}
	m.levels = append(m.levels, next)
	if len(m.levels) > levelHistory {
		m.levels = m.levels[len(m.levels)-levelHistory:]
	}
}

// ---------------------------------------------------------------------------
// Views
// ---------------------------------------------------------------------------

// View renders the current phase of the session.
func (m RecorderModel) View() string {
	if m.result != "" {
		return m.viewResult()
	}

	header := components.Header{
		Server:    m.serverURL,
		Connected: true,
		Width:     m.width,
	}

	var sections []string
	sections = append(sections, header.Render())
	sections = append(sections, "")

	switch {
	case m.sending:
		sections = append(sections, "  "+m.spin.View()+" "+styles.Dim("Transcribing and drafting the note..."))
		sections = append(sections, "  "+styles.Dim("Long encounters can take a few minutes."))

	case m.session.State() == recorder.StateStopped:
		sections = append(sections, m.viewStopped()...)

	default:
		sections = append(sections, m.viewLive()...)
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
	sendable := m.session.State() == recorder.StateStopped
	sections = append(sections, components.RecorderFooter(m.width, sendable).Render())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m RecorderModel) viewLive() []string {
	var badge string
	if m.session.State() == recorder.StatePaused {
		badge = styles.TimerText.Render("‖ PAUSED")
	} else {
		badge = styles.RecordingText.Render("● REC")
	}

	timer := styles.TimerText.Render(formatElapsed(m.session.Elapsed()))
	meter := lipgloss.NewStyle().Foreground(styles.AccentPrimary).
		Render(styles.Sparkline(m.levels, clampWidth(m.width-20, levelHistory)))

	lines := []string{
		"  " + badge + "   " + timer,
		"",
		"  " + meter,
		"",
		"  " + styles.Label.Render("FILE") + "  " + styles.Value.Render(m.session.Path()),
	}
	return lines
}

func (m RecorderModel) viewStopped() []string {
	form := strings.Join([]string{
		styles.Bold("Recording stopped") + "  " + styles.TimerText.Render(formatElapsed(m.session.Elapsed())),
		"",
		styles.Label.Render("PATIENT") + "  " + m.patient.View(),
	}, "\n")

	panel := styles.PanelFocused.Width(clampWidth(m.width-6, 70)).Render(form)
	return []string{
		"  " + panel,
		"",
		"  " + styles.Dim("Enter sends the recording for transcription; r discards it."),
	}
}

func (m RecorderModel) viewResult() string {
	var b strings.Builder
	b.WriteString("\n  " + lipgloss.NewStyle().Foreground(styles.StatusOK).Bold(true).Render("Note ready") + "\n")

	if m.resp != nil {
		timing := fmt.Sprintf("transcribed in %.1fs, drafted in %.1fs",
			m.resp.TranscriptionDuration, m.resp.ProcessDuration)
		b.WriteString("  " + styles.Dim(timing) + "\n")
	}

	b.WriteString(m.result)
	b.WriteString("\n  " + styles.Dim("Press Enter to exit.") + "\n")
	return b.String()
}

// renderScribeNote turns the scribe response into terminal markdown.
func renderScribeNote(resp *api.TranscribeResponse, width int) string {
	var md strings.Builder
	if resp.ClinicalHistory != "" {
		md.WriteString("## Clinical History\n\n" + resp.ClinicalHistory + "\n\n")
	}
	if resp.Plan != "" {
		md.WriteString("## Plan\n\n" + resp.Plan + "\n")
	}
	if md.Len() == 0 && resp.RawTranscription != "" {
		md.WriteString("## Transcription\n\n" + resp.RawTranscription + "\n")
	}

	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "\n" + md.String()
	}
	out, err := r.Render(md.String())
	if err != nil {
		return "\n" + md.String()
	}
	return out
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mnt := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, mnt, sec)
	}
	return fmt.Sprintf("%02d:%02d", mnt, sec)
}

// Package recorder implements the audio capture session: a small state
// machine around an external capture process, plus a directory watcher for
// recordings that should be sent automatically.
package recorder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

// State is the lifecycle phase of a recording session.
type State int

const (
	StateIdle State = iota
	StateRecording
	StatePaused
	StateStopped
	StateSent
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	case StateSent:
		return "sent"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TransitionError reports an operation attempted from the wrong state.
type TransitionError struct {
	Op   string
	From State
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.From)
}

// CaptureRunner drives the external audio capture process. Implementations
// own exactly one capture at a time; Start after Start without an
// intervening Stop is an error.
type CaptureRunner interface {
	Start(ctx context.Context, path string) error
	Pause() error
	Resume() error
	Stop() error
}

// Uploader is the slice of the server client the session needs to send a
// finished recording. *api.Client satisfies it.
type Uploader interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader, details api.PatientDetails) (*api.TranscribeResponse, error)
}

// Session is one recording from start to upload. Not safe for concurrent
// use; the TUI drives it from a single goroutine.
type Session struct {
	runner CaptureRunner
	dir    string

	state     State
	path      string
	startedAt time.Time
	pausedAt  time.Time
	paused    time.Duration
}

// NewSession creates an idle session that will write recordings into dir.
func NewSession(runner CaptureRunner, dir string) *Session {
	return &Session{runner: runner, dir: dir}
}

// State returns the current lifecycle phase.
func (s *Session) State() State { return s.state }

// Path returns the recording file path, empty until Start.
func (s *Session) Path() string { return s.path }

// Elapsed returns recording time excluding paused intervals.
func (s *Session) Elapsed() time.Duration {
	switch s.state {
	case StateRecording:
		return time.Since(s.startedAt) - s.paused
	case StatePaused:
		return s.pausedAt.Sub(s.startedAt) - s.paused
	case StateStopped, StateSent:
		return s.pausedAt.Sub(s.startedAt) - s.paused
	default:
		return 0
	}
}

// Start begins capture into a timestamped WAV file under the session dir.
func (s *Session) Start(ctx context.Context) error {
	if s.state != StateIdle {
		return &TransitionError{Op: "start", From: s.state}
	}

	name := fmt.Sprintf("encounter-%s.wav", time.Now().Format("20060102-150405"))
	path := filepath.Join(s.dir, name)
	if err := s.runner.Start(ctx, path); err != nil {
		return fmt.Errorf("starting capture: %w", err)
	}

	s.path = path
	s.startedAt = time.Now()
	s.paused = 0
	s.state = StateRecording
	log.Debug("recording started", "path", path)
	return nil
}

// Pause suspends the capture process.
func (s *Session) Pause() error {
	if s.state != StateRecording {
		return &TransitionError{Op: "pause", From: s.state}
	}
	if err := s.runner.Pause(); err != nil {
		return fmt.Errorf("pausing capture: %w", err)
	}
	s.pausedAt = time.Now()
	s.state = StatePaused
	return nil
}

// Resume continues a paused capture.
func (s *Session) Resume() error {
	if s.state != StatePaused {
		return &TransitionError{Op: "resume", From: s.state}
	}
	if err := s.runner.Resume(); err != nil {
		return fmt.Errorf("resuming capture: %w", err)
	}
	s.paused += time.Since(s.pausedAt)
	s.state = StateRecording
	return nil
}

// Stop ends the capture and finalizes the file. Valid from Recording or
// Paused.
func (s *Session) Stop() error {
	if s.state != StateRecording && s.state != StatePaused {
		return &TransitionError{Op: "stop", From: s.state}
	}
	if s.state == StateRecording {
		s.pausedAt = time.Now() // freeze the elapsed clock
	}
	if err := s.runner.Stop(); err != nil {
		return fmt.Errorf("stopping capture: %w", err)
	}
	s.state = StateStopped
	log.Debug("recording stopped", "path", s.path, "elapsed", s.Elapsed())
	return nil
}

// Send uploads the finished recording for scribe processing. Only valid
// once the session is stopped; a failed upload leaves the session in
// Stopped so the user can retry.
func (s *Session) Send(ctx context.Context, up Uploader, details api.PatientDetails) (*api.TranscribeResponse, error) {
	if s.state != StateStopped {
		return nil, &TransitionError{Op: "send", From: s.state}
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()

	out, err := up.Transcribe(ctx, filepath.Base(s.path), f, details)
	if err != nil {
		return nil, err
	}

	s.state = StateSent
	return out, nil
}

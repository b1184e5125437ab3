package recorder

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bloodworks-io/phlox-cli/internal/api"
)

// fakeRunner records the call sequence and writes a placeholder file so
// Send has something to upload.
type fakeRunner struct {
	calls     []string
	failStart bool
}

func (f *fakeRunner) Start(_ context.Context, path string) error {
	f.calls = append(f.calls, "start")
	if f.failStart {
		return errors.New("device busy")
	}
	return os.WriteFile(path, []byte("RIFFfake"), 0o644)
}

func (f *fakeRunner) Pause() error  { f.calls = append(f.calls, "pause"); return nil }
func (f *fakeRunner) Resume() error { f.calls = append(f.calls, "resume"); return nil }
func (f *fakeRunner) Stop() error   { f.calls = append(f.calls, "stop"); return nil }

type fakeUploader struct {
	filename string
	details  api.PatientDetails
	body     []byte
	fail     bool
}

func (f *fakeUploader) Transcribe(_ context.Context, filename string, audio io.Reader, details api.PatientDetails) (*api.TranscribeResponse, error) {
	if f.fail {
		return nil, errors.New("server unavailable")
	}
	f.filename = filename
	f.details = details
	f.body, _ = io.ReadAll(audio)
	return &api.TranscribeResponse{RawTranscription: "ok"}, nil
}

func TestSessionLifecycle(t *testing.T) {
	runner := &fakeRunner{}
	s := NewSession(runner, t.TempDir())
	ctx := context.Background()

	assert.Equal(t, StateIdle, s.State())
	require.NoError(t, s.Start(ctx))
	assert.Equal(t, StateRecording, s.State())
	assert.Equal(t, ".wav", filepath.Ext(s.Path()))

	require.NoError(t, s.Pause())
	assert.Equal(t, StatePaused, s.State())
	require.NoError(t, s.Resume())
	assert.Equal(t, StateRecording, s.State())
	require.NoError(t, s.Stop())
	assert.Equal(t, StateStopped, s.State())

	assert.Equal(t, []string{"start", "pause", "resume", "stop"}, runner.calls)
}

func TestSessionRejectsInvalidTransitions(t *testing.T) {
	s := NewSession(&fakeRunner{}, t.TempDir())
	ctx := context.Background()

	var te *TransitionError

	require.ErrorAs(t, s.Pause(), &te)
	assert.Equal(t, StateIdle, te.From)
	require.ErrorAs(t, s.Resume(), &te)
	require.ErrorAs(t, s.Stop(), &te)
	_, err := s.Send(ctx, &fakeUploader{}, api.PatientDetails{})
	require.ErrorAs(t, err, &te)

	require.NoError(t, s.Start(ctx))
	require.ErrorAs(t, s.Start(ctx), &te, "double start")
	require.ErrorAs(t, s.Resume(), &te, "resume while recording")

	require.NoError(t, s.Stop())
	require.ErrorAs(t, s.Pause(), &te, "pause after stop")
}

func TestSessionStartFailureStaysIdle(t *testing.T) {
	s := NewSession(&fakeRunner{failStart: true}, t.TempDir())
	require.Error(t, s.Start(context.Background()))
	assert.Equal(t, StateIdle, s.State())
}

func TestSessionStopFromPaused(t *testing.T) {
	s := NewSession(&fakeRunner{}, t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Pause())
	require.NoError(t, s.Stop())
	assert.Equal(t, StateStopped, s.State())
}

func TestSessionSend(t *testing.T) {
	s := NewSession(&fakeRunner{}, t.TempDir())
	ctx := context.Background()
	up := &fakeUploader{}

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Stop())

	details := api.PatientDetails{Name: "Doe, Jane"}
	out, err := s.Send(ctx, up, details)
	require.NoError(t, err)
	assert.Equal(t, "ok", out.RawTranscription)
	assert.Equal(t, StateSent, s.State())
	assert.Equal(t, filepath.Base(s.Path()), up.filename)
	assert.Equal(t, details, up.details)
	assert.Equal(t, []byte("RIFFfake"), up.body)

	// Sent is absorbing.
	_, err = s.Send(ctx, up, details)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
}

func TestSessionSendFailureAllowsRetry(t *testing.T) {
	s := NewSession(&fakeRunner{}, t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Stop())

	_, err := s.Send(ctx, &fakeUploader{fail: true}, api.PatientDetails{})
	require.Error(t, err)
	assert.Equal(t, StateStopped, s.State(), "failed upload keeps the recording sendable")

	_, err = s.Send(ctx, &fakeUploader{}, api.PatientDetails{})
	require.NoError(t, err)
	assert.Equal(t, StateSent, s.State())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "recording", StateRecording.String())
	assert.Equal(t, "paused", StatePaused.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "sent", StateSent.String())
}

package recorder

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(t *testing.T, events <-chan Event, wait time.Duration) []Event {
	t.Helper()
	var got []Event
	deadline := time.After(wait)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-deadline:
			return got
		}
	}
}

func TestWatcherReportsNewRecording(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Watch(ctx)

	path := filepath.Join(dir, "encounter-20260823-101500.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF"), 0o644))

	got := collectEvents(t, events, 2*time.Second)
	require.NotEmpty(t, got)
	assert.Equal(t, path, got[0].Path)
	assert.Equal(t, EventAdded, got[0].Type)
}

func TestWatcherIgnoresNonAudioAndTempFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Watch(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.wav"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upload.tmp-123.wav"), []byte("x"), 0o644))

	got := collectEvents(t, events, 1500*time.Millisecond)
	assert.Empty(t, got)
}

func TestWatcherCoalescesWriteBursts(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := w.Watch(ctx)

	path := filepath.Join(dir, "burst.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	for range 10 {
		_, err := f.Write([]byte("chunk"))
		require.NoError(t, err)
	}
	require.NoError(t, f.Close())

	got := collectEvents(t, events, 2*time.Second)
	require.NotEmpty(t, got)
	assert.Len(t, got, 1, "writes within one debounce window coalesce")
	assert.Equal(t, path, got[0].Path)
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events := w.Watch(ctx)
	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel closes after cancel")
	case <-time.After(time.Second):
		t.Fatal("watch channel did not close")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

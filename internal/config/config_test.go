package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.ServerURL)
	assert.Equal(t, 30, cfg.RequestTimeoutSeconds)
	assert.True(t, cfg.ChatEnabled)
	assert.Equal(t, path, Path())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	require.NoError(t, err)

	cfg.ServerURL = "http://phlox.lan:5000"
	cfg.RequestTimeoutSeconds = 60
	cfg.AutoSendRecordings = true
	require.NoError(t, Save(cfg))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://phlox.lan:5000", reloaded.ServerURL)
	assert.Equal(t, 60, reloaded.RequestTimeoutSeconds)
	assert.True(t, reloaded.AutoSendRecordings)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateAggregatesIssues(t *testing.T) {
	cfg := Defaults()
	cfg.ServerURL = "not-a-url"
	cfg.RequestTimeoutSeconds = 0

	issues := Validate(cfg)
	require.Len(t, issues, 2)

	fields := []string{issues[0].Field, issues[1].Field}
	assert.Contains(t, fields, "serverUrl")
	assert.Contains(t, fields, "requestTimeoutSeconds")
}

func TestValidatePassesDefaults(t *testing.T) {
	assert.Empty(t, Validate(Defaults()))
}

func TestEnsureRecordingsDir(t *testing.T) {
	cfg := Defaults()
	cfg.RecordingsDir = filepath.Join(t.TempDir(), "recordings")

	require.NoError(t, EnsureRecordingsDir(cfg))

	info, err := os.Stat(cfg.RecordingsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

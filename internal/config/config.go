package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config represents the local CLI configuration stored at
// ~/.config/phlox/config.json. It covers only client-side concerns; the
// clinical settings themselves (user profile, model choices, templates)
// live on the Phlox server and are managed through the api package.
type Config struct {
	ServerURL             string `json:"serverUrl" mapstructure:"serverUrl"`
	RequestTimeoutSeconds int    `json:"requestTimeoutSeconds" mapstructure:"requestTimeoutSeconds"`
	ChatEnabled           bool   `json:"chatEnabled" mapstructure:"chatEnabled"`
	RecordingsDir         string `json:"recordingsDir" mapstructure:"recordingsDir"`
	CaptureCommand        string `json:"captureCommand" mapstructure:"captureCommand"`
	AutoSendRecordings    bool   `json:"autoSendRecordings" mapstructure:"autoSendRecordings"`
}

// Defaults returns a Config populated with sensible defaults for a local
// Phlox server instance.
func Defaults() *Config {
	return &Config{
		ServerURL:             "http://localhost:5000",
		RequestTimeoutSeconds: 30,
		ChatEnabled:           true,
		RecordingsDir:         DefaultRecordingsDir(),
		CaptureCommand:        "", // auto-detect ffmpeg / arecord
		AutoSendRecordings:    false,
	}
}

// singleton holds the global loaded config and the path it was read from.
var (
	globalCfg  *Config
	globalPath string
	mu         sync.RWMutex
)

// Load reads the config file at the given path. Missing files are not an
// error: defaults are returned and cached so that first-run commands (most
// importantly `phlox setup`) work before any config exists.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run -- keep defaults.
	case err != nil:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	mu.Lock()
	globalCfg = cfg
	globalPath = path
	mu.Unlock()

	return cfg, nil
}

// Get returns the cached global config. It panics if Load has not been called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()

	if globalCfg == nil {
		panic("config.Get() called before config.Load()")
	}
	return globalCfg
}

// Path returns the config file path set during Load.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalPath
}

// Save writes the provided config back to the path it was loaded from,
// creating the parent directory if needed.
func Save(cfg *Config) error {
	mu.RLock()
	path := globalPath
	mu.RUnlock()

	if path == "" {
		return fmt.Errorf("cannot save: config path not set (call Load first)")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	mu.Lock()
	globalCfg = cfg
	mu.Unlock()

	return nil
}

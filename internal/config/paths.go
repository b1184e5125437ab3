package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath returns the conventional location of the CLI config
// file, honoring XDG via os.UserConfigDir. Falls back to the working
// directory when no home is resolvable (e.g. bare containers).
func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "phlox.json"
	}
	return filepath.Join(base, "phlox", "config.json")
}

// DefaultRecordingsDir returns the directory where encounter recordings are
// written before upload.
func DefaultRecordingsDir() string {
	base, err := os.UserHomeDir()
	if err != nil {
		return "recordings"
	}
	return filepath.Join(base, ".local", "share", "phlox", "recordings")
}

// EnsureRecordingsDir creates the recordings directory if it does not exist.
func EnsureRecordingsDir(cfg *Config) error {
	return os.MkdirAll(cfg.RecordingsDir, 0755)
}

// EmbeddedRuntime reports whether the CLI is running inside the Phlox
// desktop shell rather than a standalone terminal. The desktop app exports
// PHLOX_DESKTOP=1 into its embedded terminal; this gates presentation
// details only, never wizard logic.
func EmbeddedRuntime() bool {
	return os.Getenv("PHLOX_DESKTOP") == "1"
}

package config

import (
	"fmt"
	"net/url"
)

// ValidationError describes a single config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface for a single validation error.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// Validate checks the Config for completeness and consistency. It returns a
// slice of all discovered issues rather than stopping at the first one.
func Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if cfg.ServerURL == "" {
		errs = append(errs, ValidationError{Field: "serverUrl", Message: "required field is empty"})
	} else {
		u, err := url.Parse(cfg.ServerURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "serverUrl",
				Message: fmt.Sprintf("must be an absolute http(s) URL, got %q", cfg.ServerURL),
			})
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, ValidationError{
				Field:   "serverUrl",
				Message: fmt.Sprintf("unsupported scheme %q", u.Scheme),
			})
		}
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{
			Field:   "requestTimeoutSeconds",
			Message: fmt.Sprintf("must be > 0, got %d", cfg.RequestTimeoutSeconds),
		})
	}

	if cfg.RecordingsDir == "" {
		errs = append(errs, ValidationError{Field: "recordingsDir", Message: "required field is empty"})
	}

	return errs
}

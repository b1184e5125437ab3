package wizard

import "strings"

// Validators are pure predicates over step state. They never panic and
// never return errors; a false result is surfaced by the Controller as a
// one-line advisory, not an exception.

// ValidatePersonal requires a non-empty trimmed name and a selected
// specialty.
func ValidatePersonal(name, specialty string) bool {
	return strings.TrimSpace(name) != "" && strings.TrimSpace(specialty) != ""
}

// ValidateLLM accepts the step when no models were discovered for the
// configured endpoint (some providers expose no model list, and an
// unreachable endpoint must not trap the user here -- the default applies),
// or when a primary model has been explicitly selected.
func ValidateLLM(models []string, primaryModel string) bool {
	if len(models) == 0 {
		return true
	}
	return strings.TrimSpace(primaryModel) != ""
}

// ValidateTranscription implements the tri-state transcription gate:
//
//   - empty endpoint: transcription is skipped entirely, always valid;
//   - endpoint set and a browsable list with at least one entry exists:
//     a model must be selected;
//   - endpoint set but no usable list (including a list that exists but is
//     empty): a model name must be entered manually.
func ValidateTranscription(endpoint string, listAvailable bool, models []string, model string) bool {
	if strings.TrimSpace(endpoint) == "" {
		return true
	}
	// Whether chosen from the list or typed by hand, the requirement
	// reduces to a non-empty model value.
	return strings.TrimSpace(model) != ""
}

// ValidateTemplates requires a chosen note template key.
func ValidateTemplates(templateKey string) bool {
	return templateKey != ""
}

// ValidateQuickChat requires all three title/prompt pairs (six fields) to
// be non-empty after trimming.
func ValidateQuickChat(titles, prompts [3]string) bool {
	for i := range titles {
		if strings.TrimSpace(titles[i]) == "" || strings.TrimSpace(prompts[i]) == "" {
			return false
		}
	}
	return true
}

// ValidateLetters requires a chosen letter template.
func ValidateLetters(letterTemplateKey string) bool {
	return letterTemplateKey != ""
}

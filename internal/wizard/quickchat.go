package wizard

import (
	"fmt"
	"strings"
)

// QuickChatStep captures the three one-click chat buttons, each a
// title/prompt pair.
type QuickChatStep struct {
	titles  [3]string
	prompts [3]string
}

// NewQuickChatStep creates the quick chat step pre-filled with the
// server's stock suggestions.
func NewQuickChatStep() *QuickChatStep {
	return &QuickChatStep{
		titles: [3]string{
			"Critique my plan",
			"Any additional investigations",
			"Any differentials to consider",
		},
		prompts: [3]string{
			"Critique my plan",
			"Any additional investigations",
			"Any differentials to consider",
		},
	}
}

// ID implements Step.
func (s *QuickChatStep) ID() StepID { return StepQuickChat }

// SetTitle sets the button title for slot 0..2.
func (s *QuickChatStep) SetTitle(slot int, title string) {
	if slot >= 0 && slot < len(s.titles) {
		s.titles[slot] = title
	}
}

// Title returns the button title for slot 0..2.
func (s *QuickChatStep) Title(slot int) string {
	if slot < 0 || slot >= len(s.titles) {
		return ""
	}
	return s.titles[slot]
}

// SetPrompt sets the prompt text for slot 0..2.
func (s *QuickChatStep) SetPrompt(slot int, prompt string) {
	if slot >= 0 && slot < len(s.prompts) {
		s.prompts[slot] = prompt
	}
}

// Prompt returns the prompt text for slot 0..2.
func (s *QuickChatStep) Prompt(slot int) string {
	if slot < 0 || slot >= len(s.prompts) {
		return ""
	}
	return s.prompts[slot]
}

// Validate implements Step.
func (s *QuickChatStep) Validate() bool {
	return ValidateQuickChat(s.titles, s.prompts)
}

// Data implements Step.
func (s *QuickChatStep) Data() map[string]any {
	data := make(map[string]any, 6)
	for i := range 3 {
		data[fmt.Sprintf("quick_chat_%d_title", i+1)] = strings.TrimSpace(s.titles[i])
		data[fmt.Sprintf("quick_chat_%d_prompt", i+1)] = strings.TrimSpace(s.prompts[i])
	}
	return data
}

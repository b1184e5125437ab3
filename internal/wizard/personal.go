package wizard

import "strings"

// Specialties offered in the personal step. The server accepts free text;
// this list is the curated set the picker shows.
var Specialties = []string{
	"General Practice",
	"Haematology",
	"Cardiology",
	"Respiratory",
	"Gastroenterology",
	"Endocrinology",
	"Neurology",
	"Oncology",
	"Paediatrics",
	"Psychiatry",
	"Other",
}

// PersonalStep captures the clinician's name and specialty.
type PersonalStep struct {
	name      string
	specialty string
}

// NewPersonalStep creates an empty personal step.
func NewPersonalStep() *PersonalStep {
	return &PersonalStep{}
}

// ID implements Step.
func (s *PersonalStep) ID() StepID { return StepPersonal }

// SetName records the clinician's name.
func (s *PersonalStep) SetName(name string) { s.name = name }

// Name returns the current name value.
func (s *PersonalStep) Name() string { return s.name }

// SetSpecialty records the selected specialty.
func (s *PersonalStep) SetSpecialty(specialty string) { s.specialty = specialty }

// Specialty returns the current specialty value.
func (s *PersonalStep) Specialty() string { return s.specialty }

// Validate implements Step.
func (s *PersonalStep) Validate() bool {
	return ValidatePersonal(s.name, s.specialty)
}

// Data implements Step.
func (s *PersonalStep) Data() map[string]any {
	return map[string]any{
		"name":      strings.TrimSpace(s.name),
		"specialty": s.specialty,
	}
}

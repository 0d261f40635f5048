// Package types provides type definitions for the resume documents and derived
// values used throughout the resume-studio system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTemplate is the rendering template used when a document carries an
// unknown template key.
const DefaultTemplate = "classic"

// DefaultPersonalName is the placeholder name a fresh document starts with.
// The autosave pipeline may overwrite it once from the user profile.
const DefaultPersonalName = "Your Name"

// Field length caps. Exceeding a cap is a validation failure, never a silent
// truncation.
const (
	MaxNameLength        = 120
	MaxSummaryLength     = 600
	MaxExperienceLength  = 1200
	MaxEducationLength   = 600
	MaxProjectLength     = 800
	MaxJobDescriptionLen = 10000
)

// ResumeDocument is the single aggregate edited by the user. It is treated as
// an immutable value: every edit produces a whole replacement snapshot, and
// collaborators (store, analyzer, renderer) only ever read snapshots.
type ResumeDocument struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"max=120"`
	Template  string    `json:"template"`
	CreatedAt time.Time `json:"created_at"`

	PersonalDetails PersonalDetails `json:"personal_details"`
	Summary         string          `json:"summary" validate:"max=600"`

	Experience []ExperienceEntry `json:"experience" validate:"dive"`
	Education  []EducationEntry  `json:"education" validate:"dive"`
	Projects   []ProjectEntry    `json:"projects" validate:"dive"`
	Skills     []Skill           `json:"skills" validate:"dive"`

	// Targeting fields. An empty JobDescription is a valid, meaningful state:
	// it disables AI scoring entirely.
	JobDescription string `json:"job_description" validate:"max=10000"`
	JobPosition    string `json:"job_position"`
	Company        string `json:"company"`
}

// PersonalDetails is the singleton contact sub-record. Every field is
// independently optional; email and URL fields must be well-formed or empty.
type PersonalDetails struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Website  string `json:"website" validate:"omitempty,url"`
	LinkedIn string `json:"linkedin" validate:"omitempty,url"`
	GitHub   string `json:"github" validate:"omitempty,url"`
}

// ExperienceEntry is one work experience item. Description holds
// newline-delimited bullet lines, conventionally prefixed with a hyphen.
type ExperienceEntry struct {
	ID          string `json:"id"`
	Position    string `json:"position"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description" validate:"max=1200"`
}

// EducationEntry is one education item.
type EducationEntry struct {
	ID          string `json:"id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description" validate:"max=600"`
}

// ProjectEntry is one project item. Projects appear in the interactive
// preview but are intentionally not emitted by the PDF layout.
type ProjectEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url" validate:"omitempty,url"`
	Description string `json:"description" validate:"max=800"`
}

// Skill is a single named skill with a stable ID.
type Skill struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewDocument creates a resume document with defaults. The ID is assigned
// here and never reassigned.
func NewDocument(name string) *ResumeDocument {
	return &ResumeDocument{
		ID:        uuid.NewString(),
		Name:      name,
		Template:  DefaultTemplate,
		CreatedAt: time.Now().UTC(),
		PersonalDetails: PersonalDetails{
			Name: DefaultPersonalName,
		},
	}
}

// NewEntryID returns a fresh stable ID for an array entry. Entry IDs are the
// sole correlation key for edits and removal; positional indexes must never
// be used across renders.
func NewEntryID() string {
	return uuid.NewString()
}

// Clone returns a deep copy of the document so a snapshot handed to a
// collaborator cannot alias the live value.
func (d *ResumeDocument) Clone() *ResumeDocument {
	if d == nil {
		return nil
	}
	cp := *d
	cp.Experience = append([]ExperienceEntry(nil), d.Experience...)
	cp.Education = append([]EducationEntry(nil), d.Education...)
	cp.Projects = append([]ProjectEntry(nil), d.Projects...)
	cp.Skills = append([]Skill(nil), d.Skills...)
	return &cp
}

// ResolvedTemplate returns the document's template key, falling back to the
// default for unknown values.
func (d *ResumeDocument) ResolvedTemplate() string {
	switch d.Template {
	case "classic", "modern", "compact":
		return d.Template
	default:
		return DefaultTemplate
	}
}

// SkillNames returns the ordered skill names.
func (d *ResumeDocument) SkillNames() []string {
	names := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		names = append(names, s.Name)
	}
	return names
}

// ExperienceLines flattens the experience entries into one line per entry,
// the shape the analysis collaborator consumes.
func (d *ResumeDocument) ExperienceLines() []string {
	lines := make([]string, 0, len(d.Experience))
	for _, e := range d.Experience {
		line := e.Position
		if e.Company != "" {
			if line != "" {
				line += " at "
			}
			line += e.Company
		}
		if e.Description != "" {
			if line != "" {
				line += ": "
			}
			line += e.Description
		}
		lines = append(lines, line)
	}
	return lines
}

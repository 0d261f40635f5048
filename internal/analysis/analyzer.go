// Package analysis provides the ATS scoring collaborator: it sends the
// scoring-relevant slice of a resume document plus a target job description
// to the AI provider and returns a structured compatibility estimate.
package analysis

import (
	"context"

	"github.com/jonathan/resume-studio/internal/types"
)

// Input is the scoring-relevant slice of a document. The analyzer must never
// be invoked with an empty JobDescription; callers short-circuit to
// types.SentinelAnalysis instead.
type Input struct {
	Summary        string
	Experience     []string
	Skills         []string
	JobDescription string
}

// InputFromDocument extracts the scored fields from a document snapshot.
func InputFromDocument(doc *types.ResumeDocument) Input {
	return Input{
		Summary:        doc.Summary,
		Experience:     doc.ExperienceLines(),
		Skills:         doc.SkillNames(),
		JobDescription: doc.JobDescription,
	}
}

// Analyzer is the AI service boundary for ATS scoring. Implementations may
// be slow (seconds) and may fail; a failure must leave the caller's previous
// analysis usable.
type Analyzer interface {
	Analyze(ctx context.Context, input Input) (*types.AtsAnalysis, error)
}

package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// responseSchema constrains the model's JSON output. Responses failing
// validation are rejected before they can reach pipeline state.
const responseSchema = `{
	"type": "object",
	"required": ["score", "feedback", "matching_keywords", "missing_keywords"],
	"properties": {
		"score":             {"type": "integer"},
		"feedback":          {"type": "string"},
		"matching_keywords": {"type": "array", "items": {"type": "string"}},
		"missing_keywords":  {"type": "array", "items": {"type": "string"}}
	}
}`

// GeminiAnalyzer implements Analyzer on top of the shared AI client.
type GeminiAnalyzer struct {
	client llm.Client
	schema *gojsonschema.Schema
}

// NewGeminiAnalyzer creates an analyzer backed by the given AI client.
func NewGeminiAnalyzer(client llm.Client) (*GeminiAnalyzer, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(responseSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile response schema: %w", err)
	}
	return &GeminiAnalyzer{client: client, schema: schema}, nil
}

// Analyze scores the input against its job description. It returns an error
// if called with an empty job description; that state belongs to the caller's
// sentinel path, not the model.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, input Input) (*types.AtsAnalysis, error) {
	if strings.TrimSpace(input.JobDescription) == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	raw, err := a.client.GenerateJSON(ctx, buildAnalysisPrompt(input), llm.TierScoring)
	if err != nil {
		return nil, fmt.Errorf("analysis call failed: %w", err)
	}

	result, err := a.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("analysis response is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
		}
		return nil, fmt.Errorf("analysis response failed schema validation: %s", strings.Join(msgs, "; "))
	}

	var analysis types.AtsAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}

	if analysis.Score < 0 {
		analysis.Score = 0
	}
	if analysis.Score > 100 {
		analysis.Score = 100
	}
	analysis.MatchingKeywords = types.DedupeKeywords(analysis.MatchingKeywords)
	analysis.MissingKeywords = types.DedupeKeywords(analysis.MissingKeywords)
	return &analysis, nil
}

// buildAnalysisPrompt constructs the scoring prompt. The shape mirrors the
// response schema above.
func buildAnalysisPrompt(input Input) string {
	var sb strings.Builder
	sb.WriteString("You are an ATS (Applicant Tracking System) evaluator. ")
	sb.WriteString("Score the resume content below against the target job description.\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"score\": integer, // 0-100 ATS compatibility estimate\n")
	sb.WriteString("  \"feedback\": string, // hyphen-bulleted lines of concrete improvement advice\n")
	sb.WriteString("  \"matching_keywords\": [string], // job keywords present in the resume\n")
	sb.WriteString("  \"missing_keywords\": [string] // job keywords absent from the resume\n")
	sb.WriteString("}\n\n")

	sb.WriteString("Resume summary:\n\"\"\"\n")
	sb.WriteString(input.Summary)
	sb.WriteString("\n\"\"\"\n\n")

	sb.WriteString("Experience:\n")
	for _, line := range input.Experience {
		sb.WriteString("- ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\nSkills: ")
	sb.WriteString(strings.Join(input.Skills, ", "))
	sb.WriteString("\n\n")

	sb.WriteString("Job description:\n\"\"\"\n")
	sb.WriteString(input.JobDescription)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

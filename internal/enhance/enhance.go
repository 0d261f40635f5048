// Package enhance provides the AI-backed field improvement collaborators:
// rewriting a summary or a bullet block to better match a target job
// description, returning the replacement text plus a rationale.
package enhance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

// Improvement is a proposed replacement for a single text field.
type Improvement struct {
	Text      string `json:"text"`
	Rationale string `json:"rationale"`
}

// maxConcurrentCalls bounds the ImproveAll fan-out so a large document
// doesn't burst the provider's rate limits.
const maxConcurrentCalls = 3

// Enhancer wraps the AI client for field improvement calls.
type Enhancer struct {
	client llm.Client
}

// New creates an Enhancer backed by the given AI client.
func New(client llm.Client) *Enhancer {
	return &Enhancer{client: client}
}

// ImproveSummary rewrites a professional summary. jobDescription is optional
// context; when present the rewrite targets it.
func (e *Enhancer) ImproveSummary(ctx context.Context, summary, jobDescription string) (*Improvement, error) {
	if strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("summary is empty")
	}
	prompt := buildImprovePrompt("professional summary", summary, jobDescription,
		"Keep it under 4 sentences. First person implied, no pronouns.")
	return e.generate(ctx, prompt)
}

// ImproveBullets rewrites a newline-delimited bullet block for one
// experience entry. Each output line stays hyphen-prefixed.
func (e *Enhancer) ImproveBullets(ctx context.Context, description, jobDescription string) (*Improvement, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("description is empty")
	}
	prompt := buildImprovePrompt("experience bullet list", description, jobDescription,
		"Keep one bullet per line, each line starting with \"- \". Start each bullet with a strong action verb and keep concrete metrics.")
	return e.generate(ctx, prompt)
}

// FieldResult pairs an improvement with the entry it belongs to. Err is set
// when that field's call failed; one failure never fails the batch.
type FieldResult struct {
	Field       string // "summary" or an experience entry ID
	Improvement *Improvement
	Err         error
}

// ImproveAll improves the summary and every experience description in one
// bounded parallel batch.
func (e *Enhancer) ImproveAll(ctx context.Context, doc *types.ResumeDocument) []FieldResult {
	type target struct {
		field string
		text  string
		fn    func(context.Context, string, string) (*Improvement, error)
	}

	var targets []target
	if strings.TrimSpace(doc.Summary) != "" {
		targets = append(targets, target{"summary", doc.Summary, e.ImproveSummary})
	}
	for _, exp := range doc.Experience {
		if strings.TrimSpace(exp.Description) != "" {
			targets = append(targets, target{exp.ID, exp.Description, e.ImproveBullets})
		}
	}

	results := make([]FieldResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentCalls)
	for i, tg := range targets {
		g.Go(func() error {
			imp, err := tg.fn(gctx, tg.text, doc.JobDescription)
			results[i] = FieldResult{Field: tg.field, Improvement: imp, Err: err}
			return nil
		})
	}
	_ = g.Wait() // individual errors are carried in results
	return results
}

func (e *Enhancer) generate(ctx context.Context, prompt string) (*Improvement, error) {
	raw, err := e.client.GenerateJSON(ctx, prompt, llm.TierWriting)
	if err != nil {
		return nil, fmt.Errorf("enhancement call failed: %w", err)
	}
	var imp Improvement
	if err := json.Unmarshal([]byte(raw), &imp); err != nil {
		return nil, fmt.Errorf("failed to parse enhancement response: %w", err)
	}
	if strings.TrimSpace(imp.Text) == "" {
		return nil, fmt.Errorf("enhancement response has empty text")
	}
	return &imp, nil
}

func buildImprovePrompt(kind, current, jobDescription, rules string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert resume writer. Improve the ")
	sb.WriteString(kind)
	sb.WriteString(" below for clarity, impact, and ATS compatibility.\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n")
	sb.WriteString("{\n")
	sb.WriteString("  \"text\": string, // the improved replacement text\n")
	sb.WriteString("  \"rationale\": string // one sentence on what changed and why\n")
	sb.WriteString("}\n\n")

	sb.WriteString("Rules: ")
	sb.WriteString(rules)
	sb.WriteString(" Do not invent facts, employers, or metrics.\n\n")

	sb.WriteString("Current text:\n\"\"\"\n")
	sb.WriteString(current)
	sb.WriteString("\n\"\"\"\n")

	if strings.TrimSpace(jobDescription) != "" {
		sb.WriteString("\nTarget job description:\n\"\"\"\n")
		sb.WriteString(jobDescription)
		sb.WriteString("\n\"\"\"\n")
	}
	return sb.String()
}

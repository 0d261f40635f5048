package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/enhance"
	"github.com/jonathan/resume-studio/internal/ingest"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// handleAnalyze scores a stored document against its job description. An
// empty job description returns the placeholder analysis without an AI call.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	doc, err := store.Get(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	if strings.TrimSpace(doc.JobDescription) == "" {
		s.jsonResponse(w, http.StatusOK, types.SentinelAnalysis())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), analysis.InputFromDocument(doc))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleIngestJob fetches a job posting URL and fills the document's
// targeting fields from it.
func (s *Server) handleIngestJob(w http.ResponseWriter, r *http.Request) {
	doc, err := store.Get(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	var req struct {
		URL string `json:"url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		s.writeError(w, &ErrValidation{Message: "url is required"})
		return
	}

	posting, err := ingest.FromURL(r.Context(), req.URL, s.ingestOpts)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	updated := posting.Apply(doc)
	if err := store.Upsert(r.Context(), s.store, updated); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, updated)
}

// fieldImprovement is one entry of the batch enhancement response. Field is
// "summary" or an experience entry id.
type fieldImprovement struct {
	Field       string               `json:"field"`
	Improvement *enhance.Improvement `json:"improvement,omitempty"`
	Error       string               `json:"error,omitempty"`
}

// handleEnhanceAll rewrites the summary and every experience description of a
// stored document in one bounded batch. Individual failures are reported
// per field; the batch itself always succeeds.
func (s *Server) handleEnhanceAll(w http.ResponseWriter, r *http.Request) {
	doc, err := store.Get(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	results := s.enhancer.ImproveAll(r.Context(), doc)
	out := make([]fieldImprovement, 0, len(results))
	for _, res := range results {
		fi := fieldImprovement{Field: res.Field, Improvement: res.Improvement}
		if res.Err != nil {
			fi.Error = res.Err.Error()
		}
		out = append(out, fi)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"results": out})
}

type enhanceRequest struct {
	Text           string `json:"text"`
	JobDescription string `json:"job_description"`
}

// handleEnhanceSummary rewrites a professional summary.
func (s *Server) handleEnhanceSummary(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, &ErrValidation{Message: "text is required"})
		return
	}

	imp, err := s.enhancer.ImproveSummary(r.Context(), req.Text, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, imp)
}

// handleEnhanceBullets rewrites an experience bullet block.
func (s *Server) handleEnhanceBullets(w http.ResponseWriter, r *http.Request) {
	var req enhanceRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, &ErrValidation{Message: "text is required"})
		return
	}

	imp, err := s.enhancer.ImproveBullets(r.Context(), req.Text, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, imp)
}

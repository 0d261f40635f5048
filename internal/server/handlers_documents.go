package server

import (
	"net/http"
	"strings"

	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

// documentSummary is the list-view projection of a document.
type documentSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Template string `json:"template"`
	Company  string `json:"company,omitempty"`
	Position string `json:"job_position,omitempty"`
}

// handleListDocuments returns the collection as summaries.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.LoadAll(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	summaries := make([]documentSummary, 0, len(docs))
	for i := range docs {
		summaries = append(summaries, documentSummary{
			ID:       docs[i].ID,
			Name:     docs[i].Name,
			Template: docs[i].ResolvedTemplate(),
			Company:  docs[i].Company,
			Position: docs[i].JobPosition,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": summaries})
}

// handleCreateDocument creates a new document with defaults.
func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.writeError(w, &ErrValidation{Message: "name is required"})
		return
	}

	doc := types.NewDocument(req.Name)
	if err := store.Upsert(r.Context(), s.store, doc); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, doc)
}

// handleGetDocument returns a single document by id.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := store.Get(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

// handleUpdateDocument replaces a document. The path id wins over any id in
// the body, and the document must already exist.
func (s *Server) handleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := store.Get(r.Context(), s.store, id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var doc types.ResumeDocument
	if err := decodeJSON(r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	doc.ID = id
	doc.CreatedAt = existing.CreatedAt

	if err := types.ValidateDocument(&doc); err != nil {
		s.writeError(w, &ErrValidation{Message: err.Error()})
		return
	}
	if err := store.Upsert(r.Context(), s.store, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, &doc)
}

// handleDeleteDocument removes a document. Deleting an absent id succeeds.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := store.Delete(r.Context(), s.store, r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

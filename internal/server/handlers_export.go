package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-studio/internal/pdf"
	"github.com/jonathan/resume-studio/internal/store"
)

// handleExportPDF renders a stored document to PDF and returns it as an
// attachment.
func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	doc, err := store.Get(r.Context(), s.store, r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	data, err := pdf.Render(doc)
	if err != nil {
		s.writeError(w, fmt.Errorf("PDF rendering failed: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(doc)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

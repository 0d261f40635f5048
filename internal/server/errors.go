package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jonathan/resume-studio/internal/store"
)

// maxRequestBody caps request bodies at 1 MiB; documents are far smaller.
const maxRequestBody = 1 << 20

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var notFound *store.ErrNotFound
	var validation *ErrValidation
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads and unmarshals a request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		return &ErrValidation{Message: "failed to read request body"}
	}
	if len(body) == 0 {
		return &ErrValidation{Message: "request body is required"}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &ErrValidation{Message: "invalid JSON in request body"}
	}
	return nil
}

// writeError maps an error to a status code and writes the uniform
// {"error": ...} body.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

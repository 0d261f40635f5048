package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateDocument checks field well-formedness and length caps across the
// whole aggregate, including array entries. It returns a single error
// describing every failing field.
func ValidateDocument(doc *ResumeDocument) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	if err := validate.Struct(doc); err != nil {
		return describeValidation(err)
	}
	seen := make(map[string]bool)
	for _, id := range entryIDs(doc) {
		if id == "" {
			return fmt.Errorf("validation error: entry with empty id")
		}
		if seen[id] {
			return fmt.Errorf("validation error: duplicate entry id %s", id)
		}
		seen[id] = true
	}
	return nil
}

func entryIDs(doc *ResumeDocument) []string {
	ids := make([]string, 0, len(doc.Experience)+len(doc.Education)+len(doc.Projects)+len(doc.Skills))
	for _, e := range doc.Experience {
		ids = append(ids, e.ID)
	}
	for _, e := range doc.Education {
		ids = append(ids, e.ID)
	}
	for _, p := range doc.Projects {
		ids = append(ids, p.ID)
	}
	for _, s := range doc.Skills {
		ids = append(ids, s.ID)
	}
	return ids
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation error: %w", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "max":
			parts = append(parts, fmt.Sprintf("%s exceeds %s characters", fe.Namespace(), fe.Param()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s is not a valid email", fe.Namespace()))
		case "url":
			parts = append(parts, fmt.Sprintf("%s is not a valid URL", fe.Namespace()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("validation error: %s", strings.Join(parts, "; "))
}

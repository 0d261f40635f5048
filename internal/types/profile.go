package types

// UserProfile is the separately-sourced account profile. The autosave
// pipeline uses it for a one-way, once-per-load seed of the document's
// personal name; it never syncs back.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

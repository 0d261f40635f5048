// Package store provides persistence for the resume document collection.
//
// The collection is always read and written as a whole: keyed lookups,
// upserts, and deletes are implemented client-side over the loaded sequence
// by id equality. There is no fine-grained locking; the design assumes a
// single writer per document, and concurrent writers are last-writer-wins at
// the collection level.
package store

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-studio/internal/types"
)

// Store is the persistence collaborator for the document collection.
type Store interface {
	// LoadAll returns the full persisted collection.
	LoadAll(ctx context.Context) ([]types.ResumeDocument, error)
	// SaveAll replaces the full persisted collection.
	SaveAll(ctx context.Context, docs []types.ResumeDocument) error
}

// ErrNotFound indicates a document id is absent from the collection.
type ErrNotFound struct {
	ID string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.ID)
}

// Get looks up a document by id.
func Get(ctx context.Context, s Store, id string) (*types.ResumeDocument, error) {
	docs, err := s.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	for i := range docs {
		if docs[i].ID == id {
			return docs[i].Clone(), nil
		}
	}
	return nil, &ErrNotFound{ID: id}
}

// Upsert replaces the entry matching doc.ID, or appends it if absent, then
// writes the whole collection back.
func Upsert(ctx context.Context, s Store, doc *types.ResumeDocument) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document id is required")
	}
	docs, err := s.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	replaced := false
	for i := range docs {
		if docs[i].ID == doc.ID {
			docs[i] = *doc.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, *doc.Clone())
	}
	if err := s.SaveAll(ctx, docs); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// Delete removes the entry matching id, leaving all other entries untouched.
// Deleting an absent id is a no-op, so repeated deletes are idempotent.
func Delete(ctx context.Context, s Store, id string) error {
	docs, err := s.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	kept := docs[:0]
	for i := range docs {
		if docs[i].ID != id {
			kept = append(kept, docs[i])
		}
	}
	if len(kept) == len(docs) {
		return nil
	}
	if err := s.SaveAll(ctx, kept); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

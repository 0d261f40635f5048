package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/resume-studio/internal/types"
)

// FileStore persists the collection as a single JSON array on disk. It is
// the default backend, the local-storage analog for CLI and single-user use.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store at path. The file is created on
// first save; a missing file loads as an empty collection.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("store path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// LoadAll reads the full collection from disk.
func (fs *FileStore) LoadAll(_ context.Context) ([]types.ResumeDocument, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	data, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return []types.ResumeDocument{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", fs.path, err)
	}
	if len(data) == 0 {
		return []types.ResumeDocument{}, nil
	}

	var docs []types.ResumeDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", fs.path, err)
	}
	return docs, nil
}

// SaveAll writes the full collection to disk. The write goes to a temp file
// first and is renamed into place so a failed write never corrupts the
// previous collection.
func (fs *FileStore) SaveAll(_ context.Context, docs []types.ResumeDocument) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if docs == nil {
		docs = []types.ResumeDocument{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

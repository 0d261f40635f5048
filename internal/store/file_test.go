package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestFileStore_MissingFileLoadsEmpty(t *testing.T) {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "resumes.json"))
	require.NoError(t, err)

	docs, err := fs.LoadAll(t.Context())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestFileStore_RoundTrip(t *testing.T) {
	fs := newTestStore(t)

	doc := types.NewDocument("roundtrip")
	doc.Experience = []types.ExperienceEntry{
		{ID: types.NewEntryID(), Position: "Engineer", Description: "- Did X.\n- Did Y."},
	}
	doc.Skills = []types.Skill{{ID: types.NewEntryID(), Name: "Go"}}
	require.NoError(t, fs.SaveAll(t.Context(), []types.ResumeDocument{*doc}))

	loaded, err := fs.LoadAll(t.Context())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, doc.ID, loaded[0].ID)
	assert.Equal(t, "- Did X.\n- Did Y.", loaded[0].Experience[0].Description)
	assert.Equal(t, "Go", loaded[0].Skills[0].Name)
}

func TestFileStore_CreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "resumes.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, fs.SaveAll(t.Context(), nil))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileStore_CorruptFileFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resumes.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = fs.LoadAll(t.Context())
	assert.Error(t, err)
}

func TestFileStore_EmptyPathRejected(t *testing.T) {
	_, err := NewFileStore("")
	assert.Error(t, err)
}

package enhance

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/types"
)

type fakeClient struct {
	mu        sync.Mutex
	response  string
	err       error
	callCount int
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount++
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

func TestImproveSummary_ReturnsImprovement(t *testing.T) {
	client := &fakeClient{response: `{"text": "Seasoned Go engineer.", "rationale": "Tightened wording."}`}
	e := New(client)

	imp, err := e.ImproveSummary(t.Context(), "I am a Go engineer.", "Go role")
	require.NoError(t, err)
	assert.Equal(t, "Seasoned Go engineer.", imp.Text)
	assert.Equal(t, "Tightened wording.", imp.Rationale)
}

func TestImproveSummary_RejectsEmptyInput(t *testing.T) {
	client := &fakeClient{response: `{"text": "x", "rationale": "y"}`}
	e := New(client)

	_, err := e.ImproveSummary(t.Context(), "  ", "")
	assert.Error(t, err)
	assert.Zero(t, client.callCount)
}

func TestImproveBullets_RejectsEmptyResponseText(t *testing.T) {
	client := &fakeClient{response: `{"text": "", "rationale": "nothing"}`}
	e := New(client)

	_, err := e.ImproveBullets(t.Context(), "- Did things.", "")
	assert.Error(t, err)
}

func TestImproveAll_CollectsPerFieldResults(t *testing.T) {
	client := &fakeClient{response: `{"text": "Better.", "rationale": "r"}`}
	e := New(client)

	doc := types.NewDocument("test")
	doc.Summary = "A summary."
	doc.Experience = []types.ExperienceEntry{
		{ID: "exp-1", Position: "Dev", Description: "- Built stuff."},
		{ID: "exp-2", Position: "Dev", Description: ""},
		{ID: "exp-3", Position: "Dev", Description: "- Shipped things."},
	}

	results := e.ImproveAll(t.Context(), doc)

	// Summary + two non-empty descriptions; the empty one is skipped.
	require.Len(t, results, 3)
	fields := []string{results[0].Field, results[1].Field, results[2].Field}
	assert.Contains(t, fields, "summary")
	assert.Contains(t, fields, "exp-1")
	assert.Contains(t, fields, "exp-3")
	for _, r := range results {
		assert.NoError(t, r.Err)
		assert.Equal(t, "Better.", r.Improvement.Text)
	}
}

func TestImproveAll_IndividualFailureDoesNotFailBatch(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("model overloaded")}
	e := New(client)

	doc := types.NewDocument("test")
	doc.Summary = "A summary."
	doc.Experience = []types.ExperienceEntry{{ID: "exp-1", Description: "- Did X."}}

	results := e.ImproveAll(t.Context(), doc)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Error(t, r.Err)
		assert.Nil(t, r.Improvement)
	}
}

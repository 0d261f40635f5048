package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/enhance"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
	"github.com/jonathan/resume-studio/internal/types"
)

// memStore is an in-memory Store for handler tests.
type memStore struct {
	mu   sync.Mutex
	docs []types.ResumeDocument
	fail bool
}

func (m *memStore) LoadAll(context.Context) ([]types.ResumeDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return nil, fmt.Errorf("storage unavailable")
	}
	out := make([]types.ResumeDocument, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

func (m *memStore) SaveAll(_ context.Context, docs []types.ResumeDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return fmt.Errorf("storage unavailable")
	}
	m.docs = make([]types.ResumeDocument, len(docs))
	copy(m.docs, docs)
	return nil
}

// stubAnalyzer returns a fixed analysis and records calls.
type stubAnalyzer struct {
	mu     sync.Mutex
	calls  int
	result *types.AtsAnalysis
	err    error
}

func (a *stubAnalyzer) Analyze(context.Context, analysis.Input) (*types.AtsAnalysis, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	return a.result, nil
}

// stubLLM feeds canned JSON to the enhancer.
type stubLLM struct {
	response string
	err      error
}

func (c *stubLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return c.response, c.err
}

func (c *stubLLM) Close() error { return nil }

func newTestServer(t *testing.T, st *memStore, an *stubAnalyzer, client llm.Client) *Server {
	t.Helper()
	if st == nil {
		st = &memStore{}
	}
	if an == nil {
		an = &stubAnalyzer{result: &types.AtsAnalysis{Score: 70, Feedback: "- Solid."}}
	}
	if client == nil {
		client = &stubLLM{response: `{"text": "Improved.", "rationale": "Tighter."}`}
	}
	srv, err := New(Options{
		Store:     st,
		Analyzer:  an,
		Enhancer:  enhance.New(client),
		RateLimit: ratelimit.Config{Enabled: false},
	})
	require.NoError(t, err)
	t.Cleanup(func() { srv.limiter.Stop() })
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresCollaborators(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateAndGetDocument(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)

	rec := doJSON(t, srv, http.MethodPost, "/documents", map[string]string{"name": "Backend roles"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created types.ResumeDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Backend roles", created.Name)

	rec = doJSON(t, srv, http.MethodGet, "/documents/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.ResumeDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created.ID, got.ID)
}

func TestCreateDocument_EmptyName(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodPost, "/documents", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestGetDocument_NotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/documents/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListDocuments(t *testing.T) {
	st := &memStore{}
	a := types.NewDocument("A")
	b := types.NewDocument("B")
	b.Company = "Acme"
	st.docs = []types.ResumeDocument{*a, *b}

	srv := newTestServer(t, st, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/documents", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Documents []documentSummary `json:"documents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, "Acme", resp.Documents[1].Company)
}

func TestUpdateDocument_PathIDWins(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	st.docs = []types.ResumeDocument{*doc}

	srv := newTestServer(t, st, nil, nil)
	payload := doc.Clone()
	payload.ID = "something-else"
	payload.Summary = "Updated summary."

	rec := doJSON(t, srv, http.MethodPut, "/documents/"+doc.ID, payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.ResumeDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, "Updated summary.", got.Summary)
}

func TestUpdateDocument_ValidationFailure(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	st.docs = []types.ResumeDocument{*doc}

	srv := newTestServer(t, st, nil, nil)
	payload := doc.Clone()
	payload.PersonalDetails.Email = "not-an-email"

	rec := doJSON(t, srv, http.MethodPut, "/documents/"+doc.ID, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDocument_NotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodPut, "/documents/nope", types.NewDocument("x"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteDocument_Idempotent(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	st.docs = []types.ResumeDocument{*doc}

	srv := newTestServer(t, st, nil, nil)
	rec := doJSON(t, srv, http.MethodDelete, "/documents/"+doc.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Second delete of the same id still succeeds.
	rec = doJSON(t, srv, http.MethodDelete, "/documents/"+doc.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAnalyze_EmptyJobDescriptionSkipsAI(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	st.docs = []types.ResumeDocument{*doc}
	an := &stubAnalyzer{result: &types.AtsAnalysis{Score: 90}}

	srv := newTestServer(t, st, an, nil)
	rec := doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/analyze", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.AtsAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsSentinel())
	assert.Zero(t, an.calls)
}

func TestAnalyze_WithJobDescription(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	doc.JobDescription = "Go engineer wanted."
	st.docs = []types.ResumeDocument{*doc}
	an := &stubAnalyzer{result: &types.AtsAnalysis{Score: 85, Feedback: "- Good match."}}

	srv := newTestServer(t, st, an, nil)
	rec := doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/analyze", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got types.AtsAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 85, got.Score)
	assert.Equal(t, 1, an.calls)
}

func TestAnalyze_AIFailure(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	doc.JobDescription = "Go engineer wanted."
	st.docs = []types.ResumeDocument{*doc}
	an := &stubAnalyzer{err: fmt.Errorf("provider down")}

	srv := newTestServer(t, st, an, nil)
	rec := doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/analyze", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEnhanceSummary(t *testing.T) {
	srv := newTestServer(t, nil, nil, &stubLLM{response: `{"text": "Better.", "rationale": "Shorter."}`})
	rec := doJSON(t, srv, http.MethodPost, "/enhance/summary", enhanceRequest{Text: "I do things."})
	require.Equal(t, http.StatusOK, rec.Code)

	var imp enhance.Improvement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &imp))
	assert.Equal(t, "Better.", imp.Text)
}

func TestEnhanceSummary_EmptyText(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodPost, "/enhance/summary", enhanceRequest{Text: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEnhanceBullets(t *testing.T) {
	srv := newTestServer(t, nil, nil, &stubLLM{response: `{"text": "- Shipped X.", "rationale": "Action verbs."}`})
	rec := doJSON(t, srv, http.MethodPost, "/enhance/bullets", enhanceRequest{
		Text:           "- did x",
		JobDescription: "Go role.",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shipped X.")
}

func TestEnhanceAll_PerFieldResults(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	doc.Summary = "I do things."
	doc.Experience = []types.ExperienceEntry{
		{ID: "exp-1", Position: "Dev", Description: "- Did X."},
		{ID: "exp-2", Position: "Dev", Description: ""},
	}
	st.docs = []types.ResumeDocument{*doc}

	srv := newTestServer(t, st, nil, &stubLLM{response: `{"text": "Better.", "rationale": "r"}`})
	rec := doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/enhance", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Results []struct {
			Field       string               `json:"field"`
			Improvement *enhance.Improvement `json:"improvement"`
			Error       string               `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Summary plus the one non-empty description; the empty entry is skipped.
	require.Len(t, resp.Results, 2)
	fields := []string{resp.Results[0].Field, resp.Results[1].Field}
	assert.Contains(t, fields, "summary")
	assert.Contains(t, fields, "exp-1")
	for _, res := range resp.Results {
		assert.Empty(t, res.Error)
		assert.Equal(t, "Better.", res.Improvement.Text)
	}
}

func TestEnhanceAll_NotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodPost, "/documents/nope/enhance", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEnhanceAll_IsRateLimited(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	doc.Summary = "I do things."
	st.docs = []types.ResumeDocument{*doc}

	srv, err := New(Options{
		Store:     st,
		Analyzer:  &stubAnalyzer{result: &types.AtsAnalysis{Score: 50}},
		Enhancer:  enhance.New(&stubLLM{response: `{"text": "x", "rationale": "y"}`}),
		RateLimit: ratelimit.Config{Enabled: true, Burst: 1, PerMinute: 1},
	})
	require.NoError(t, err)
	t.Cleanup(func() { srv.limiter.Stop() })

	rec := doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/enhance", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/enhance", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestExportPDF(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	doc.PersonalDetails.Name = "Ada Lovelace"
	doc.Summary = "Engineer."
	st.docs = []types.ResumeDocument{*doc}

	srv := newTestServer(t, st, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/documents/"+doc.ID+"/export.pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "mine.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestExportPDF_NotFound(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/documents/nope/export.pdf", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStoreFailureIs500(t *testing.T) {
	srv := newTestServer(t, &memStore{fail: true}, nil, nil)
	rec := doJSON(t, srv, http.MethodGet, "/documents", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestRateLimit_AIRoutesOnly(t *testing.T) {
	st := &memStore{}
	doc := types.NewDocument("mine")
	doc.JobDescription = "Go role."
	st.docs = []types.ResumeDocument{*doc}
	an := &stubAnalyzer{result: &types.AtsAnalysis{Score: 50}}

	srv, err := New(Options{
		Store:     st,
		Analyzer:  an,
		Enhancer:  enhance.New(&stubLLM{response: `{"text": "x", "rationale": "y"}`}),
		RateLimit: ratelimit.Config{Enabled: true, Burst: 1, PerMinute: 1},
	})
	require.NoError(t, err)
	t.Cleanup(func() { srv.limiter.Stop() })

	rec := doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/analyze", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, http.MethodPost, "/documents/"+doc.ID+"/analyze", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Plain CRUD is never limited.
	for i := 0; i < 5; i++ {
		rec = doJSON(t, srv, http.MethodGet, "/documents", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/documents", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

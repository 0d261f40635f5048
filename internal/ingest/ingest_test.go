package ingest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

const postingHTML = `<!DOCTYPE html>
<html>
<head><title>Senior Go Engineer - Acme Corp</title></head>
<body>
<nav>Home | Jobs | About</nav>
<div class="job-description">
<h1>Senior Go Engineer</h1>
<p>We are looking for an engineer with Go and PostgreSQL experience.</p>
<p>You will build distributed systems.</p>
</div>
<footer>Copyright Acme</footer>
</body>
</html>`

func TestExtractText_UsesPostingSelector(t *testing.T) {
	text, title, err := extractText(postingHTML)
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer - Acme Corp", title)
	assert.Contains(t, text, "Go and PostgreSQL")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright Acme")
}

func TestExtractText_BodyFallback(t *testing.T) {
	text, _, err := extractText(`<html><body><p>Plain posting text.</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Plain posting text.", text)
}

func TestCleanWhitespace(t *testing.T) {
	got := cleanWhitespace("  first  \n\n\n   second\n\t\n")
	assert.Equal(t, "first\nsecond", got)
}

func TestSplitTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		position string
		company  string
	}{
		{"dash", "Senior Go Engineer - Acme Corp", "Senior Go Engineer", "Acme Corp"},
		{"pipe role second", "Acme Corp | Senior Go Engineer", "Senior Go Engineer", "Acme Corp"},
		{"at", "Senior Go Engineer at Acme Corp", "Senior Go Engineer", "Acme Corp"},
		{"no separator", "Senior Go Engineer", "Senior Go Engineer", ""},
		{"empty", "", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			position, company := splitTitle(tt.title)
			assert.Equal(t, tt.position, position)
			assert.Equal(t, tt.company, company)
		})
	}
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	posting, err := FromURL(t.Context(), srv.URL, Options{})
	require.NoError(t, err)

	assert.Equal(t, "Senior Go Engineer", posting.Position)
	assert.Equal(t, "Acme Corp", posting.Company)
	assert.Contains(t, posting.Text, "distributed systems")
}

func TestFromURL_InvalidURL(t *testing.T) {
	_, err := FromURL(t.Context(), "not a url", Options{})
	require.Error(t, err)

	var ingestErr *Error
	require.ErrorAs(t, err, &ingestErr)
	assert.Equal(t, "not a url", ingestErr.URL)
}

func TestFromURL_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := FromURL(t.Context(), srv.URL, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestApply(t *testing.T) {
	doc := types.NewDocument("mine")
	doc.Company = "Existing Co"

	posting := &Posting{Text: "posting body", Position: "Engineer", Company: "Acme"}
	got := posting.Apply(doc)

	assert.Equal(t, "posting body", got.JobDescription)
	assert.Equal(t, "Engineer", got.JobPosition)
	// Never overwrites a company the user already set.
	assert.Equal(t, "Existing Co", got.Company)
	// Input is untouched.
	assert.Empty(t, doc.JobDescription)
}

func TestApply_CapsDescription(t *testing.T) {
	posting := &Posting{Text: strings.Repeat("x", types.MaxJobDescriptionLen+500)}
	got := posting.Apply(types.NewDocument("x"))
	assert.Len(t, got.JobDescription, types.MaxJobDescriptionLen)
}

func TestNeedsBrowser(t *testing.T) {
	assert.True(t, needsBrowser("short"))
	assert.False(t, needsBrowser(strings.Repeat("a", minContentLength)))
}

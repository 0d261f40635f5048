package pdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/types"
)

func TestBuildContactItems_OnlyNonEmptyFieldsInOrder(t *testing.T) {
	items := buildContactItems(types.PersonalDetails{
		Email:    "ada@example.com",
		Location: "London",
		GitHub:   "https://github.com/ada",
	})

	require.Len(t, items, 3)
	assert.Equal(t, "London", items[0].Text)
	assert.Empty(t, items[0].Href)
	assert.Equal(t, "mailto:ada@example.com", items[1].Href)
	assert.Equal(t, "ada", items[2].Text)
	assert.Equal(t, "https://github.com/ada", items[2].Href)
}

func TestBuildContactItems_PhoneLinkStripsSpaces(t *testing.T) {
	items := buildContactItems(types.PersonalDetails{Phone: "+44 20 7946 0958"})
	require.Len(t, items, 1)
	assert.Equal(t, "+44 20 7946 0958", items[0].Text)
	assert.Equal(t, "tel:+442079460958", items[0].Href)
}

func TestBuildContactItems_Empty(t *testing.T) {
	assert.Empty(t, buildContactItems(types.PersonalDetails{Name: "only a name"}))
}

func TestLinkLabel(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		generic string
		want    string
	}{
		{"last path segment", "https://www.linkedin.com/in/ada-lovelace", "linkedin", "ada-lovelace"},
		{"single segment", "https://github.com/ada", "github", "ada"},
		{"no path", "https://example.com", "website", "website"},
		{"trailing slash only", "https://example.com/", "website", "website"},
		{"unparseable", "://not a url", "website", "website"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, linkLabel(tt.raw, tt.generic))
		})
	}
}

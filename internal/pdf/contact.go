package pdf

import (
	"net/url"
	"strings"

	"github.com/jonathan/resume-studio/internal/types"
)

// contactItem is one element of the centered contact line. Href is empty for
// plain text items.
type contactItem struct {
	Text string
	Href string
}

// buildContactItems assembles the contact line from the non-empty personal
// detail fields, in fixed order. Email and phone become interactive
// mailto:/tel: regions; website, linkedin, and github become labeled links.
func buildContactItems(pd types.PersonalDetails) []contactItem {
	var items []contactItem
	if pd.Location != "" {
		items = append(items, contactItem{Text: pd.Location})
	}
	if pd.Email != "" {
		items = append(items, contactItem{Text: pd.Email, Href: "mailto:" + pd.Email})
	}
	if pd.Phone != "" {
		items = append(items, contactItem{Text: pd.Phone, Href: "tel:" + strings.ReplaceAll(pd.Phone, " ", "")})
	}
	if pd.Website != "" {
		items = append(items, contactItem{Text: linkLabel(pd.Website, "website"), Href: pd.Website})
	}
	if pd.LinkedIn != "" {
		items = append(items, contactItem{Text: linkLabel(pd.LinkedIn, "linkedin"), Href: pd.LinkedIn})
	}
	if pd.GitHub != "" {
		items = append(items, contactItem{Text: linkLabel(pd.GitHub, "github"), Href: pd.GitHub})
	}
	return items
}

// linkLabel derives a short display label for a URL: the last non-empty path
// segment, falling back to the generic label when the URL has no path or
// cannot be parsed.
func linkLabel(raw, generic string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" && u.Path == "" {
		return generic
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return generic
	}
	return last
}

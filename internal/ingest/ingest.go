package ingest

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-studio/internal/types"
)

// Posting is the extracted targeting content of a job posting page.
type Posting struct {
	URL      string
	Text     string
	Position string
	Company  string
}

// Options configures FromURL.
type Options struct {
	// UseBrowser enables the headless-browser fallback for pages whose
	// plain-HTTP content is too short to be a real posting.
	UseBrowser bool
	// BrowserTimeout bounds the headless render. Zero uses DefaultTimeout.
	BrowserTimeout time.Duration
}

// FromURL fetches and extracts a job posting.
func FromURL(ctx context.Context, urlStr string, opts Options) (*Posting, error) {
	pg, err := fetchPage(ctx, urlStr)
	if err != nil {
		return nil, err
	}

	text, title, err := extractText(pg.HTML)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}

	if opts.UseBrowser && needsBrowser(text) {
		timeout := opts.BrowserTimeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		html, berr := renderWithBrowser(ctx, urlStr, timeout)
		if berr != nil {
			// Keep the HTTP content; a failed render is not fatal.
			log.Printf("[ingest] browser fallback failed for %s: %v", urlStr, berr)
		} else if btext, btitle, eerr := extractText(html); eerr == nil && len(btext) > len(text) {
			text = btext
			if btitle != "" {
				title = btitle
			}
		}
	}

	if strings.TrimSpace(text) == "" {
		return nil, &Error{URL: urlStr, Message: "no posting content found"}
	}

	position, company := splitTitle(title)
	return &Posting{URL: urlStr, Text: text, Position: position, Company: company}, nil
}

// Apply writes the posting into the document's targeting fields on a clone,
// never mutating the input snapshot. Position and company only fill empty
// fields; the job description is always replaced.
func (p *Posting) Apply(doc *types.ResumeDocument) *types.ResumeDocument {
	out := doc.Clone()
	out.JobDescription = capped(p.Text, types.MaxJobDescriptionLen)
	if out.JobPosition == "" {
		out.JobPosition = p.Position
	}
	if out.Company == "" {
		out.Company = p.Company
	}
	return out
}

// capped substring-truncates generated content to the field cap. This is the
// one place truncation is allowed: the text came from a crawl, not the user.
func capped(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// splitTitle guesses position and company from a page title like
// "Senior Go Engineer - Acme Corp" or "Acme Corp | Senior Go Engineer".
func splitTitle(title string) (position, company string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ""
	}
	for _, sep := range []string{" - ", " – ", " | ", " at "} {
		if idx := strings.Index(title, sep); idx > 0 {
			left := strings.TrimSpace(title[:idx])
			right := strings.TrimSpace(title[idx+len(sep):])
			// Job boards put the role first; "at" flips the guess.
			if sep == " at " {
				return left, right
			}
			if looksLikeRole(right) && !looksLikeRole(left) {
				return right, left
			}
			return left, right
		}
	}
	return title, ""
}

var roleWords = []string{
	"engineer", "developer", "manager", "designer", "analyst",
	"scientist", "architect", "lead", "intern", "director",
}

func looksLikeRole(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range roleWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

package analysis

import (
	"regexp"
	"sort"
	"strings"
)

// Span marks a keyword occurrence in annotated text by byte offsets.
type Span struct {
	Start   int
	End     int
	Keyword string
}

// HighlightKeywords finds word-boundary occurrences of the given keywords in
// text, case-insensitively. It is a pure annotation helper: no state, no
// mutation of the input. Spans are returned in document order.
func HighlightKeywords(text string, keywords []string) []Span {
	var spans []Span
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, Span{Start: loc[0], End: loc[1], Keyword: kw})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Start < spans[j].Start })
	return spans
}

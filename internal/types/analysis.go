package types

// AtsAnalysis is the derived, ephemeral ATS compatibility estimate. It is
// never persisted; it is recomputed on load and on every qualifying edit.
type AtsAnalysis struct {
	Score            int      `json:"score"`
	Feedback         string   `json:"feedback"`
	MatchingKeywords []string `json:"matching_keywords"`
	MissingKeywords  []string `json:"missing_keywords"`
}

// SentinelFeedback is the fixed feedback text shown when no job description
// is present.
const SentinelFeedback = "- Add a job description to get an ATS compatibility score."

// SentinelAnalysis returns the fixed analysis used when the job description
// is empty. It must never be replaced by a model call in that state.
func SentinelAnalysis() *AtsAnalysis {
	return &AtsAnalysis{
		Score:            0,
		Feedback:         SentinelFeedback,
		MatchingKeywords: []string{},
		MissingKeywords:  []string{},
	}
}

// IsSentinel reports whether a is the empty-job-description sentinel.
func (a *AtsAnalysis) IsSentinel() bool {
	return a != nil && a.Score == 0 && a.Feedback == SentinelFeedback &&
		len(a.MatchingKeywords) == 0 && len(a.MissingKeywords) == 0
}

// DedupeKeywords removes semantic duplicates (case-insensitive) while
// preserving first-seen order for stable rendering.
func DedupeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		key := normalizeKeyword(k)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, k)
	}
	return out
}

func normalizeKeyword(k string) string {
	b := make([]byte, 0, len(k))
	for i := 0; i < len(k); i++ {
		c := k[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c == ' ' || c == '\t' {
			if len(b) == 0 || b[len(b)-1] == ' ' {
				continue
			}
			c = ' '
		}
		b = append(b, c)
	}
	for len(b) > 0 && b[len(b)-1] == ' ' {
		b = b[:len(b)-1]
	}
	return string(b)
}

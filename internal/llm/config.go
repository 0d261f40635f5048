// Package llm provides the AI provider client used by the analysis and
// enhancement collaborators.
package llm

// ModelTier selects a model by the kind of work a collaborator does.
type ModelTier string

const (
	// TierScoring is for structured scoring and keyword extraction (ATS analysis).
	TierScoring ModelTier = "scoring"
	// TierWriting is for rewriting user-facing text (summary/bullet enhancement).
	TierWriting ModelTier = "writing"
)

// Provider identifies an AI provider.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
)

// Config holds the provider and per-tier model selection.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierScoring: "gemini-2.5-flash",
			TierWriting: "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a tier, falling back to the scoring tier.
func (c *Config) Model(tier ModelTier) string {
	if m, ok := c.Models[tier]; ok {
		return m
	}
	return c.Models[TierScoring]
}

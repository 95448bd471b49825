// Package llm provides the text-generation client used by the customization
// pipeline, plus model configuration for switching tiers and providers.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierLite is for cheap drafting work.
	TierLite ModelTier = "lite"
	// TierStandard is the default tier for generation and review.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the heaviest structural-repair work.
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider.
type Provider string

// Supported providers. Only Gemini is implemented today.
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
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a tier, falling back through standard and
// lite when the requested tier is not configured.
func (c *Config) Model(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	return c.Models[TierLite]
}

// WithModelForAllTiers returns a copy of the config pinning every tier to a
// single model. Used when the caller passes an explicit --model override.
func (c *Config) WithModelForAllTiers(model string) *Config {
	clone := &Config{Provider: c.Provider, Models: make(map[ModelTier]string, len(c.Models))}
	for tier := range c.Models {
		clone.Models[tier] = model
	}
	if len(clone.Models) == 0 {
		clone.Models[TierStandard] = model
	}
	return clone
}

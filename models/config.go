// Package models defines data structures for configuration and analysis.
package models

import "time"

// AnalyzeConfig holds the tunable constants of a run. All values come from
// CLI flags or defaults; the weighting constants and thresholds are design
// choices rather than contracts, so they live in configuration instead of
// being hard-coded at the call sites.
type AnalyzeConfig struct {
	InputDir  string
	OutputDir string
	Persona   string
	Job       string

	WorkerCount int
	TimeBudget  time.Duration

	// Signal weights. Renormalized proportionally when a signal is disabled.
	KeywordWeight    float64
	SemanticWeight   float64
	StructuralWeight float64

	// SemanticEnabled gates the embedding signal entirely.
	SemanticEnabled bool
	// MinSemanticTokens is the minimum token count below which the semantic
	// signal is dropped for a segment.
	MinSemanticTokens int

	// Dedup thresholds.
	JaccardThreshold float64
	DedupWindow      int

	// Result sizes.
	TopSections    int
	TopSubsections int

	// Refined-text extraction.
	SentenceKeywordThreshold float64
	SentenceSimThreshold     float64
	RefineMaxChars           int
	PreviewMaxChars          int
}

// DefaultAnalyzeConfig returns the documented defaults.
func DefaultAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		InputDir:    "input",
		OutputDir:   "output",
		WorkerCount: 4,
		TimeBudget:  300 * time.Second,

		KeywordWeight:    0.45,
		SemanticWeight:   0.40,
		StructuralWeight: 0.15,

		SemanticEnabled:   true,
		MinSemanticTokens: 5,

		JaccardThreshold: 0.9,
		DedupWindow:      64,

		TopSections:    15,
		TopSubsections: 25,

		SentenceKeywordThreshold: 0.05,
		SentenceSimThreshold:     0.15,
		RefineMaxChars:           700,
		PreviewMaxChars:          200,
	}
}

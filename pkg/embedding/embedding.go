// Package embedding models the semantic-similarity capability used by the
// relevance analyzer. The capability is optional: an unavailable provider
// makes the analyzer renormalize its remaining signals instead of failing.
package embedding

import "math"

// Provider produces dense vectors for text. Available reports whether the
// provider is ready; Embed must only be called when it is.
type Provider interface {
	Available() bool
	Embed(text string) ([]float64, error)
}

// Cosine returns the cosine similarity of two vectors, clamped to [0,1].
// Mismatched or zero vectors yield 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

// Disabled is a Provider that is never available. Used when the semantic
// signal is switched off by configuration.
type Disabled struct{}

func (Disabled) Available() bool                 { return false }
func (Disabled) Embed(string) ([]float64, error) { return nil, nil }

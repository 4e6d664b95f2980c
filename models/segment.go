package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// LanguageUnknown is the sentinel code used when detection cannot classify a text.
const LanguageUnknown = "unknown"

// Segment is one extracted text block tied to a document page. Segments are
// created once by an extractor, tagged with a language, and never mutated.
type Segment struct {
	Document     string `json:"document"`
	Page         int    `json:"page"`
	SectionTitle string `json:"section_title"`
	Text         string `json:"text"`
	Language     string `json:"language"`
	Heading      bool   `json:"heading"`
	Hash         string `json:"hash"`
}

// NewSegment builds a Segment and computes its content hash. The hash is
// derived from whitespace-collapsed lowercased text so that re-extractions of
// the same block dedupe to the same identity.
func NewSegment(document string, page int, title, text string) Segment {
	return Segment{
		Document:     document,
		Page:         page,
		SectionTitle: title,
		Text:         text,
		Hash:         ContentHash(text),
	}
}

// Valid reports whether the segment satisfies the model invariants:
// page >= 1 and a non-empty text body.
func (s Segment) Valid() bool {
	return s.Page >= 1 && strings.TrimSpace(s.Text) != ""
}

// ContentHash returns a stable short hex digest of the normalized text.
func ContentHash(text string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(text)), " ")
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:8])
}

// ScoredSegment is a Segment annotated with analyzer output. Rank is zero
// until the ranking engine assigns it.
type ScoredSegment struct {
	Segment         Segment
	Score           float64
	Reasoning       string
	Rank            int
	MatchedKeywords []string
	MatchedFocus    []string
}

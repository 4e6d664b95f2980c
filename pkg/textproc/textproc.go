// Package textproc provides language-aware text normalization primitives
// used by the relevance analyzer and the ranking engine: tokenization,
// diacritic folding, stop-word filtering, sentence splitting, and token-set
// similarity.
package textproc

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches letter runs across scripts, keeping internal
// apostrophes (don't, l'analyse) as single tokens.
var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// foldTransformer decomposes to NFD, removes combining marks, and recomposes.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldDiacritics strips combining marks from text: "metodología" becomes
// "metodologia". Callers decide per language whether folding is safe for
// their keyword sets.
func FoldDiacritics(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		return text
	}
	return folded
}

// Normalize lowercases text and optionally folds diacritics.
func Normalize(text string, fold bool) string {
	text = strings.ToLower(text)
	if fold {
		text = FoldDiacritics(text)
	}
	return text
}

// Tokenize splits normalized text into word tokens. It does not filter
// stop words; use Content for that.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// Content tokenizes text and drops stop words for the given language.
func Content(text, lang string) []string {
	stop := StopwordsFor(lang)
	tokens := tokenPattern.FindAllString(text, -1)
	out := tokens[:0]
	for _, tok := range tokens {
		if _, isStop := stop[tok]; isStop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// TokenSet returns the distinct tokens of a slice.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

// UniqueRatio returns distinct/total tokens; 0 for an empty slice. Repeated
// boilerplate (headers, footers, TOC rows) has a low ratio.
func UniqueRatio(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}
	return float64(len(TokenSet(tokens))) / float64(len(tokens))
}

// Jaccard computes token-set Jaccard similarity of two token slices.
func Jaccard(a, b []string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

// sentenceEnd matches terminators for Latin scripts plus the Devanagari danda.
var sentenceEnd = regexp.MustCompile(`[.!?।]+[\s"')\]]*`)

// Sentences splits text into trimmed sentences. Splitting is heuristic; it
// is only used for extractive refinement, not for display-quality output.
func Sentences(text string) []string {
	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[start:loc[1]])
		if s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		out = append(out, tail)
	}
	return out
}

// Truncate cuts s to at most max runes, appending "..." when it had to cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return strings.TrimSpace(string(r[:max])) + "..."
}

package embedding

import (
	"errors"
	"math"
	"sort"

	"github.com/dtnitsch/personadoc/pkg/textproc"
)

// TFIDF is a deterministic, offline embedding provider. The vocabulary and
// IDF table are built once from the run's segment corpus; afterwards the
// provider is read-only and safe for concurrent use.
type TFIDF struct {
	vocabulary map[string]int
	idf        []float64
	dimension  int
	prepared   bool
}

// NewTFIDF creates an unprepared provider. It reports unavailable until
// Prepare succeeds.
func NewTFIDF() *TFIDF {
	return &TFIDF{vocabulary: make(map[string]int)}
}

// Available reports whether Prepare has built a usable vocabulary.
func (t *TFIDF) Available() bool { return t.prepared }

// Dimension returns the vector length after preparation.
func (t *TFIDF) Dimension() int { return t.dimension }

// Prepare builds the vocabulary and smoothed IDF values from the corpus.
// Terms are ordered lexically so vector layout is stable across runs.
func (t *TFIDF) Prepare(corpus []string) error {
	if len(corpus) == 0 {
		return errors.New("empty corpus for tf-idf prepare")
	}

	df := make(map[string]int)
	for _, text := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range t.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return errors.New("no tokens found in corpus")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	t.vocabulary = make(map[string]int, len(terms))
	t.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		t.vocabulary[term] = i
		t.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	t.dimension = len(terms)
	t.prepared = true
	return nil
}

// Embed computes the L2-normalized TF-IDF vector for a text.
func (t *TFIDF) Embed(text string) ([]float64, error) {
	if !t.prepared {
		return nil, errors.New("tf-idf provider not prepared")
	}

	vec := make([]float64, t.dimension)
	tf := make(map[int]int)
	total := 0
	for _, tok := range t.tokenize(text) {
		if idx, ok := t.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec, nil
	}

	for idx, count := range tf {
		vec[idx] = float64(count) / float64(total) * t.idf[idx]
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// tokenize lowercases and splits text, dropping English stop words. The
// stop-word filter is intentionally language-neutral here: IDF weighting
// already damps high-frequency function words in other languages.
func (t *TFIDF) tokenize(text string) []string {
	tokens := textproc.Tokenize(textproc.Normalize(text, false))
	out := tokens[:0]
	for _, tok := range tokens {
		if textproc.IsStopword(tok, "en") {
			continue
		}
		out = append(out, tok)
	}
	return out
}

package ranking

import (
	"strings"

	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/embedding"
	"github.com/dtnitsch/personadoc/pkg/textproc"
)

// refineFallbackChars is the prefix kept when no sentence clears the
// relevance thresholds.
const refineFallbackChars = 300

// RefineText produces the condensed extractive version of a segment body:
// sentences that individually clear the keyword-overlap or embedding
// similarity threshold, in document order, up to the character budget.
func (e *Engine) RefineText(seg models.Segment) string {
	sentences := textproc.Sentences(seg.Text)
	if len(sentences) <= 1 {
		return textproc.Truncate(seg.Text, e.cfg.RefineMaxChars)
	}

	keywords := e.mergedKeywords(seg.Language)

	var b strings.Builder
	for _, sentence := range sentences {
		if !e.sentenceRelevant(sentence, keywords) {
			continue
		}
		if b.Len() > 0 {
			if b.Len()+len(sentence)+1 > e.cfg.RefineMaxChars {
				break
			}
			b.WriteByte(' ')
		} else if len(sentence) > e.cfg.RefineMaxChars {
			return textproc.Truncate(sentence, e.cfg.RefineMaxChars)
		}
		b.WriteString(sentence)
	}

	if b.Len() == 0 {
		return textproc.Truncate(seg.Text, refineFallbackChars)
	}
	return b.String()
}

// sentenceRelevant checks one sentence against the lower per-sentence
// thresholds.
func (e *Engine) sentenceRelevant(sentence string, keywords map[string]struct{}) bool {
	norm := textproc.Normalize(sentence, false)
	tokens := textproc.Tokenize(norm)
	if len(tokens) == 0 {
		return false
	}

	hits := 0
	for _, tok := range tokens {
		if _, ok := keywords[tok]; ok {
			hits++
		}
	}
	// Multi-word keywords match against the normalized sentence.
	for term := range keywords {
		if strings.ContainsAny(term, " -") && strings.Contains(norm, term) {
			hits++
		}
	}
	if float64(hits)/float64(len(tokens)) >= e.cfg.SentenceKeywordThreshold {
		return true
	}

	if e.queryVec != nil && e.provider != nil && e.provider.Available() {
		if vec, err := e.provider.Embed(sentence); err == nil {
			if embedding.Cosine(vec, e.queryVec) >= e.cfg.SentenceSimThreshold {
				return true
			}
		}
	}
	return false
}

// mergedKeywords is the flat persona+job keyword vocabulary for a language,
// used only for per-sentence overlap checks.
func (e *Engine) mergedKeywords(lang string) map[string]struct{} {
	personaKw, _ := e.profile.KeywordsFor(lang)
	jobKw, _ := e.pattern.KeywordsFor(lang)
	out := make(map[string]struct{}, len(personaKw)+len(jobKw))
	for term := range personaKw {
		out[strings.ToLower(term)] = struct{}{}
	}
	for term := range jobKw {
		out[strings.ToLower(term)] = struct{}{}
	}
	return out
}

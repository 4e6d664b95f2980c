package analyzer

import (
	"sort"
	"strings"

	"github.com/dtnitsch/personadoc/pkg/embedding"
	"github.com/dtnitsch/personadoc/pkg/knowledge"
	"github.com/dtnitsch/personadoc/pkg/textproc"
)

// Density dampening for the keyword signal: coverage alone rewards long
// segments that mention everything once, so the signal is scaled by match
// density relative to segment length. densityCeiling is the occurrences-
// per-token ratio treated as full density.
const (
	densityCeiling  = 0.25
	densityFloor    = 0.4
	boilerplateKnee = 0.4
	shortTokenKnee  = 8
)

// keywordSignal computes the normalized keyword score in [0,1] and the
// matched terms ordered by descending weight (alphabetical within ties).
func (a *Analyzer) keywordSignal(normText, normTitle string, tokens []string, set *languageSet) (float64, []string) {
	if set.total == 0 {
		return 0, nil
	}

	type match struct {
		term   string
		weight float64
	}
	var (
		matches       []match
		matchedWeight float64
		occurrences   int
	)

	// Title matches count double: a keyword in the heading is a stronger
	// signal than the same keyword buried in the body.
	for term, entry := range set.keywords {
		count := countTerm(normText, tokens, term)
		if strings.Contains(normTitle, term) {
			count += 2
		}
		if count == 0 {
			continue
		}
		matches = append(matches, match{term: term, weight: entry.weight})
		matchedWeight += entry.weight
		occurrences += count
	}
	if len(matches) == 0 {
		return 0, nil
	}

	coverage := matchedWeight / set.total
	density := float64(occurrences) / float64(len(tokens))
	if density > densityCeiling {
		density = densityCeiling
	}
	signal := coverage * (densityFloor + (1-densityFloor)*(density/densityCeiling))
	if signal > 1 {
		signal = 1
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].weight != matches[j].weight {
			return matches[i].weight > matches[j].weight
		}
		return matches[i].term < matches[j].term
	})
	terms := make([]string, len(matches))
	for i, m := range matches {
		terms[i] = m.term
	}
	return signal, terms
}

// countTerm counts occurrences of a keyword. Single-word terms are counted
// against the token stream; multi-word phrases against the normalized text.
func countTerm(normText string, tokens []string, term string) int {
	if !strings.ContainsAny(term, " -") {
		count := 0
		for _, tok := range tokens {
			if tok == term {
				count++
			}
		}
		return count
	}
	return strings.Count(normText, term)
}

// semanticSignal returns the embedding cosine similarity against the run's
// query vector. The second return reports whether the signal was active;
// when false the caller renormalizes the remaining weights.
func (a *Analyzer) semanticSignal(rawText string, tokens []string) (float64, bool) {
	if a.queryVec == nil || len(tokens) < a.cfg.MinSemanticTokens {
		return 0, false
	}
	vec, err := a.provider.Embed(rawText)
	if err != nil {
		return 0, false
	}
	return embedding.Cosine(vec, a.queryVec), true
}

// structuralSignal scores document-structure cues in [0,1]: high-value
// headings, canonical section names in the body, technical vocabulary.
// The bonus decays for boilerplate-looking segments (very low unique-token
// ratio, as with repeated headers and footers) and for very short ones.
func (a *Analyzer) structuralSignal(normTitle, normText string, tokens []string, lang string) (float64, bool) {
	var signal float64
	titleHit := false

	if normTitle != "" {
		for _, section := range a.highValueSections(lang) {
			if strings.Contains(normTitle, section) {
				titleHit = true
				signal += 0.6
				break
			}
		}
	}

	bodyHits := 0
	for _, section := range knowledge.SectionKeywords(lang) {
		if strings.Contains(normText, strings.ToLower(section)) {
			bodyHits++
		}
	}
	if bodyHits > 3 {
		bodyHits = 3
	}
	signal += 0.1 * float64(bodyHits)

	for _, term := range knowledge.TechnicalTerms(lang) {
		if strings.Contains(normText, strings.ToLower(term)) {
			signal += 0.1
			break
		}
	}

	if signal > 1 {
		signal = 1
	}

	if ratio := textproc.UniqueRatio(tokens); ratio < boilerplateKnee {
		signal *= ratio / boilerplateKnee
	}
	if len(tokens) < shortTokenKnee {
		signal *= float64(len(tokens)) / shortTokenKnee
	}
	return signal, titleHit
}

// highValueSections merges the job's and persona's expected section names
// with the language-localized canonical set, lowercased for matching.
func (a *Analyzer) highValueSections(lang string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(names []string) {
		for _, name := range names {
			lower := strings.ToLower(name)
			if _, ok := seen[lower]; ok {
				continue
			}
			seen[lower] = struct{}{}
			out = append(out, lower)
		}
	}
	add(a.pattern.Sections)
	add(a.profile.Sections)
	add(knowledge.SectionKeywords(lang))
	return out
}

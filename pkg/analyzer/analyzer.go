// Package analyzer scores segments against a (persona, job) pair. Scoring
// combines a keyword signal, an optional semantic-similarity signal, and a
// structural signal into one score in [0,100] plus a short human-readable
// justification. Scoring is deterministic: identical text under the same
// persona and job always produces the identical score and reasoning.
package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/embedding"
	"github.com/dtnitsch/personadoc/pkg/textproc"
)

// Analyzer holds the immutable per-run scoring state. Safe for reuse across
// segments; not safe for concurrent mutation of the language cache, so the
// pipeline scores on a single goroutine.
type Analyzer struct {
	cfg      models.AnalyzeConfig
	profile  models.PersonaProfile
	pattern  models.JobPattern
	provider embedding.Provider

	queryVec []float64
	langSets map[string]*languageSet
}

// languageSet caches the merged keyword view for one language.
type languageSet struct {
	keywords map[string]keywordEntry
	total    float64
	fold     bool
	fallback bool
}

type keywordEntry struct {
	weight      float64
	fromPersona bool
}

// New builds an analyzer for one (persona, job) pair. When the embedding
// provider is available, the query vector is synthesized once from the
// persona's focus areas and the job's focus description.
func New(cfg models.AnalyzeConfig, profile models.PersonaProfile, pattern models.JobPattern, provider embedding.Provider) *Analyzer {
	a := &Analyzer{
		cfg:      cfg,
		profile:  profile,
		pattern:  pattern,
		provider: provider,
		langSets: make(map[string]*languageSet),
	}
	if cfg.SemanticEnabled && provider != nil && provider.Available() {
		if vec, err := provider.Embed(a.queryText()); err == nil {
			a.queryVec = vec
		}
	}
	return a
}

// queryText synthesizes the reference text the semantic signal compares
// segments against.
func (a *Analyzer) queryText() string {
	parts := []string{a.profile.ID, a.pattern.ID, a.pattern.Focus}
	parts = append(parts, a.profile.FocusAreas...)
	kw, _ := a.profile.KeywordsFor("en")
	terms := make([]string, 0, len(kw))
	for term := range kw {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	parts = append(parts, terms...)
	return strings.Join(parts, " ")
}

// QueryVector exposes the synthesized query embedding, or nil when the
// semantic signal is inactive. The ranking engine reuses it for
// sentence-level refinement.
func (a *Analyzer) QueryVector() []float64 { return a.queryVec }

// Score evaluates one segment. It never returns an error: degraded inputs
// degrade the score and annotate the reasoning instead.
func (a *Analyzer) Score(seg models.Segment) models.ScoredSegment {
	set := a.languageSet(seg.Language)

	normText := textproc.Normalize(seg.Text, set.fold)
	normTitle := textproc.Normalize(seg.SectionTitle, set.fold)
	tokens := textproc.Tokenize(normText)

	scored := models.ScoredSegment{Segment: seg}
	if len(tokens) == 0 {
		scored.Reasoning = "no extractable content"
		return scored
	}

	kwSignal, matched := a.keywordSignal(normText, normTitle, tokens, set)
	semSignal, semActive := a.semanticSignal(seg.Text, tokens)
	structSignal, titleHit := a.structuralSignal(normTitle, normText, tokens, seg.Language)

	wKeyword := a.cfg.KeywordWeight
	wSemantic := a.cfg.SemanticWeight
	wStructural := a.cfg.StructuralWeight
	if !semActive {
		wSemantic = 0
	}
	totalWeight := wKeyword + wSemantic + wStructural
	if totalWeight == 0 {
		scored.Reasoning = "no extractable content"
		return scored
	}

	score := (kwSignal*wKeyword + semSignal*wSemantic + structSignal*wStructural) / totalWeight * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	scored.Score = round2(score)
	scored.MatchedKeywords = matched
	scored.MatchedFocus = a.matchedFocusAreas(normText)
	scored.Reasoning = a.reasoning(matched, titleHit, set.fallback, seg.Language)
	return scored
}

// reasoning builds the deterministic justification string: the strongest
// matched keywords first, then structural and degradation notes.
func (a *Analyzer) reasoning(matched []string, titleHit bool, fallback bool, lang string) string {
	var parts []string
	if len(matched) > 0 {
		top := matched
		if len(top) > 3 {
			top = top[:3]
		}
		parts = append(parts, "Contains relevant keywords: "+strings.Join(top, ", "))
	}
	if titleHit {
		parts = append(parts, "High-value section title")
	}
	if len(parts) == 0 {
		parts = append(parts, "No persona or job keywords matched")
	}
	if fallback {
		parts = append(parts, fmt.Sprintf("Language %q has no dedicated keyword set; scored against \"en\" (low confidence)", lang))
	}
	return strings.Join(parts, "; ")
}

// matchedFocusAreas returns the persona focus areas whose terms appear in
// the normalized text, preserving profile order.
func (a *Analyzer) matchedFocusAreas(normText string) []string {
	tokenSet := textproc.TokenSet(textproc.Tokenize(normText))
	var matched []string
	for _, area := range a.profile.FocusAreas {
		for _, word := range textproc.Tokenize(strings.ToLower(area)) {
			if textproc.IsStopword(word, "en") {
				continue
			}
			if _, ok := tokenSet[word]; ok {
				matched = append(matched, area)
				break
			}
		}
	}
	return matched
}

// languageSet resolves the merged persona+job keyword view for a language,
// falling back to the "en" sets when the language has no dedicated entries.
func (a *Analyzer) languageSet(lang string) *languageSet {
	if lang == "" {
		lang = models.LanguageUnknown
	}
	if set, ok := a.langSets[lang]; ok {
		return set
	}

	personaKw, personaFell := a.profile.KeywordsFor(lang)
	jobKw, jobFell := a.pattern.KeywordsFor(lang)

	set := &languageSet{
		keywords: make(map[string]keywordEntry, len(personaKw)+len(jobKw)),
		fallback: lang == models.LanguageUnknown || (personaFell && jobFell),
	}

	personaDim := meanWeights(a.profile.ContentWeights)
	jobDim := meanWeights(a.pattern.ContentWeights)
	for term, w := range personaKw {
		set.keywords[term] = keywordEntry{weight: float64(w) * personaDim, fromPersona: true}
	}
	for term, w := range jobKw {
		weighted := float64(w) * jobDim
		if existing, ok := set.keywords[term]; !ok || weighted > existing.weight {
			set.keywords[term] = keywordEntry{weight: weighted}
		}
	}
	for _, entry := range set.keywords {
		set.total += entry.weight
	}

	// Diacritic folding is only safe when the active keyword set itself
	// carries no diacritics; otherwise folded text can no longer match.
	set.fold = true
	for term := range set.keywords {
		if textproc.FoldDiacritics(term) != term {
			set.fold = false
			break
		}
	}

	a.langSets[lang] = set
	return set
}

func meanWeights(weights map[string]float64) float64 {
	if len(weights) == 0 {
		return 1
	}
	var sum float64
	for _, w := range weights {
		sum += w
	}
	return sum / float64(len(weights))
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

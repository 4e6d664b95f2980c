// Package ranking orders scored segments into the final report sequences:
// deduplication, a fully deterministic total order, top-K section selection,
// and sub-section refinement.
package ranking

import (
	"sort"

	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/embedding"
	"github.com/dtnitsch/personadoc/pkg/textproc"
)

// Engine ranks the scored segments of one run.
type Engine struct {
	cfg      models.AnalyzeConfig
	profile  models.PersonaProfile
	pattern  models.JobPattern
	provider embedding.Provider
	queryVec []float64
}

// New builds a ranking engine. queryVec may be nil when the semantic signal
// is inactive; sentence refinement then relies on keyword overlap alone.
func New(cfg models.AnalyzeConfig, profile models.PersonaProfile, pattern models.JobPattern, provider embedding.Provider, queryVec []float64) *Engine {
	return &Engine{cfg: cfg, profile: profile, pattern: pattern, provider: provider, queryVec: queryVec}
}

// Result is the ranked output: the section-level ranking, the sub-section
// analysis, and whether fewer segments survived than the configured sizes.
type Result struct {
	Sections    []models.ExtractedSection
	Subsections []models.SubsectionEntry
	Shortfall   bool
}

// Rank deduplicates, orders, and partitions the scored segments. Ranking is
// strictly single-threaded and deterministic.
func (e *Engine) Rank(scored []models.ScoredSegment) Result {
	survivors := e.Deduplicate(scored)
	e.order(survivors)

	topK := e.cfg.TopSections
	topM := e.cfg.TopSubsections
	if topM < topK {
		topM = topK
	}

	var res Result
	if len(survivors) < topK || len(survivors) < topM {
		res.Shortfall = true
	}
	if topK > len(survivors) {
		topK = len(survivors)
	}
	if topM > len(survivors) {
		topM = len(survivors)
	}

	res.Sections = make([]models.ExtractedSection, 0, topK)
	for i := 0; i < topK; i++ {
		s := &survivors[i]
		s.Rank = i + 1
		res.Sections = append(res.Sections, models.ExtractedSection{
			Document:           s.Segment.Document,
			Page:               s.Segment.Page,
			SectionTitle:       s.Segment.SectionTitle,
			ImportanceRank:     s.Rank,
			RelevanceScore:     s.Score,
			SelectionReasoning: s.Reasoning,
			ContentPreview:     textproc.Truncate(s.Segment.Text, e.cfg.PreviewMaxChars),
			Language:           s.Segment.Language,
		})
	}

	res.Subsections = make([]models.SubsectionEntry, 0, topM)
	for i := 0; i < topM; i++ {
		s := survivors[i]
		res.Subsections = append(res.Subsections, models.SubsectionEntry{
			Document:           s.Segment.Document,
			Page:               s.Segment.Page,
			SectionTitle:       s.Segment.SectionTitle,
			RefinedText:        e.RefineText(s.Segment),
			RelevanceScore:     s.Score,
			SelectionReasoning: s.Reasoning,
			PersonaFocus:       e.personaFocus(s),
			JobAlignment:       e.pattern.Focus,
			Language:           s.Segment.Language,
		})
	}
	return res
}

// order sorts by score descending with a fully deterministic tie-break:
// titled segments first, then lower page number, then document id.
func (e *Engine) order(segments []models.ScoredSegment) {
	sort.SliceStable(segments, func(i, j int) bool {
		a, b := segments[i], segments[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		aTitled := a.Segment.SectionTitle != ""
		bTitled := b.Segment.SectionTitle != ""
		if aTitled != bTitled {
			return aTitled
		}
		if a.Segment.Page != b.Segment.Page {
			return a.Segment.Page < b.Segment.Page
		}
		if a.Segment.Document != b.Segment.Document {
			return a.Segment.Document < b.Segment.Document
		}
		return a.Segment.Hash < b.Segment.Hash
	})
}

// personaFocus returns the focus areas matched during scoring, falling back
// to the persona's full focus list when nothing matched explicitly.
func (e *Engine) personaFocus(s models.ScoredSegment) []string {
	if len(s.MatchedFocus) > 0 {
		return s.MatchedFocus
	}
	return e.profile.FocusAreas
}

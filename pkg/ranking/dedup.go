package ranking

import (
	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/textproc"
)

// Deduplicate removes near-identical segments so repeated boilerplate
// (headers, footers, TOC rows) cannot dominate the ranking. Exact matches
// are caught by content hash across the whole corpus; near matches by
// token-set Jaccard against a bounded window of previously kept segments
// within the same document, keeping the comparison linear in practice.
// The highest-scoring representative of each group survives.
func (e *Engine) Deduplicate(scored []models.ScoredSegment) []models.ScoredSegment {
	type kept struct {
		index  int
		tokens []string
	}

	byHash := make(map[string]int)
	windows := make(map[string][]kept)
	var out []models.ScoredSegment

	replaceIfBetter := func(at int, candidate models.ScoredSegment) {
		if candidate.Score > out[at].Score {
			out[at] = candidate
		}
	}

	for _, s := range scored {
		if idx, ok := byHash[s.Segment.Hash]; ok {
			replaceIfBetter(idx, s)
			continue
		}

		tokens := textproc.Tokenize(textproc.Normalize(s.Segment.Text, false))
		window := windows[s.Segment.Document]

		dup := false
		for _, k := range window {
			if textproc.Jaccard(tokens, k.tokens) >= e.cfg.JaccardThreshold {
				replaceIfBetter(k.index, s)
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		out = append(out, s)
		byHash[s.Segment.Hash] = len(out) - 1
		window = append(window, kept{index: len(out) - 1, tokens: tokens})
		if len(window) > e.cfg.DedupWindow {
			window = window[1:]
		}
		windows[s.Segment.Document] = window
	}
	return out
}

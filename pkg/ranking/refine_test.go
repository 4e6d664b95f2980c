package ranking

import (
	"strings"
	"testing"

	"github.com/dtnitsch/personadoc/models"
)

func TestRefineTextKeepsRelevantSentences(t *testing.T) {
	engine := newTestEngine(t, models.DefaultAnalyzeConfig())

	seg := models.NewSegment("a.pdf", 2, "Methodology",
		"The methodology relies on statistical analysis of the collected data. "+
			"The weather was pleasant and the coffee tasted fine. "+
			"Findings from the literature support the hypothesis.")

	got := engine.RefineText(seg)
	if !strings.Contains(got, "methodology relies on statistical analysis") {
		t.Errorf("refined text lost a relevant sentence: %q", got)
	}
	if !strings.Contains(got, "Findings from the literature") {
		t.Errorf("refined text lost a relevant sentence: %q", got)
	}
	if strings.Contains(got, "coffee") {
		t.Errorf("refined text kept an irrelevant sentence: %q", got)
	}
}

func TestRefineTextPreservesSentenceOrder(t *testing.T) {
	engine := newTestEngine(t, models.DefaultAnalyzeConfig())

	seg := models.NewSegment("a.pdf", 1, "",
		"Findings support the hypothesis. The coffee tasted fine. The methodology uses statistical analysis.")
	got := engine.RefineText(seg)

	first := strings.Index(got, "Findings")
	second := strings.Index(got, "methodology")
	if first < 0 || second < 0 || first > second {
		t.Errorf("sentence order not preserved: %q", got)
	}
}

func TestRefineTextSingleSentenceTruncates(t *testing.T) {
	cfg := models.DefaultAnalyzeConfig()
	cfg.RefineMaxChars = 40
	engine := newTestEngine(t, cfg)

	seg := models.NewSegment("a.pdf", 1, "",
		"One very long sentence about the methodology of the statistical analysis with no terminator")
	got := engine.RefineText(seg)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("single long sentence not truncated: %q", got)
	}
	if len(got) > cfg.RefineMaxChars+3 {
		t.Errorf("refined text length %d exceeds budget %d", len(got), cfg.RefineMaxChars)
	}
}

func TestRefineTextRespectsCharBudget(t *testing.T) {
	cfg := models.DefaultAnalyzeConfig()
	cfg.RefineMaxChars = 90
	engine := newTestEngine(t, cfg)

	seg := models.NewSegment("a.pdf", 1, "",
		"The methodology uses statistical analysis. "+
			"The findings confirm the research hypothesis. "+
			"The literature review covers previous research on the methodology. "+
			"Further analysis of the data supports the conclusion.")
	got := engine.RefineText(seg)
	if len(got) > cfg.RefineMaxChars {
		t.Errorf("refined text length %d exceeds budget %d: %q", len(got), cfg.RefineMaxChars, got)
	}
	if got == "" {
		t.Error("empty refined text with relevant sentences present")
	}
}

func TestRefineTextFallbackPrefix(t *testing.T) {
	engine := newTestEngine(t, models.DefaultAnalyzeConfig())

	filler := strings.Repeat("The weather was pleasant and the coffee tasted fine by the window. ", 6)
	seg := models.NewSegment("a.pdf", 1, "", strings.TrimSpace(filler))

	got := engine.RefineText(seg)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("fallback did not truncate to a prefix: %q", got)
	}
	if len(got) > refineFallbackChars+3 {
		t.Errorf("fallback length %d exceeds %d", len(got), refineFallbackChars)
	}
	if !strings.HasPrefix(got, "The weather was pleasant") {
		t.Errorf("fallback is not a document-order prefix: %q", got)
	}
}

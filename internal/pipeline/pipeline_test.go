package pipeline

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/knowledge"
)

// staticDetector tags every segment with a fixed language.
type staticDetector struct{ lang string }

func (d staticDetector) Detect(string) string { return d.lang }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// writeInputFiles creates empty placeholder documents; extraction is faked
// in the tests, so only the names matter.
func writeInputFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("placeholder"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func fakeSegments(path string) []models.Segment {
	doc := filepath.Base(path)
	return []models.Segment{
		models.NewSegment(doc, 1, "Methodology",
			"The methodology combines statistical analysis of experiment data with a review of the existing literature."),
		models.NewSegment(doc, 2, "Results",
			"Results and findings from the study support the research hypothesis with statistical significance."),
	}
}

func newTestOrchestrator(t *testing.T, inputDir string) *Orchestrator {
	t.Helper()
	cfg := models.DefaultAnalyzeConfig()
	cfg.InputDir = inputDir
	cfg.OutputDir = t.TempDir()
	cfg.Persona = "researcher"
	cfg.Job = "literature_review"
	cfg.WorkerCount = 2

	return &Orchestrator{
		Cfg:      cfg,
		Base:     knowledge.Default(),
		Detector: staticDetector{lang: "en"},
		Logger:   discardLogger(),
		Extract:  func(path string) ([]models.Segment, error) { return fakeSegments(path), nil },
	}
}

func TestProcessHappyPath(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "b.pdf", "a.pdf")
	orch := newTestOrchestrator(t, inputDir)

	report, err := orch.Process()
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}

	meta := report.Metadata
	if !reflect.DeepEqual(meta.InputDocuments, []string{"a.pdf", "b.pdf"}) {
		t.Errorf("input documents = %v, want sorted names", meta.InputDocuments)
	}
	if meta.Persona != "researcher" || meta.JobToBeDone != "literature_review" {
		t.Errorf("identity = (%q, %q)", meta.Persona, meta.JobToBeDone)
	}
	if !reflect.DeepEqual(meta.DetectedLanguages, []string{"en"}) {
		t.Errorf("detected languages = %v", meta.DetectedLanguages)
	}
	if meta.Partial {
		t.Error("happy path flagged partial")
	}
	if meta.TotalSectionsFound != len(report.ExtractedSections) {
		t.Errorf("section count %d disagrees with %d sections",
			meta.TotalSectionsFound, len(report.ExtractedSections))
	}
	if len(report.ExtractedSections) == 0 || len(report.SubsectionAnalysis) == 0 {
		t.Fatal("empty ranking output")
	}
	for i, section := range report.ExtractedSections {
		if section.ImportanceRank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, section.ImportanceRank, i+1)
		}
		if section.RelevanceScore < 0 || section.RelevanceScore > 100 {
			t.Errorf("score %v outside [0,100]", section.RelevanceScore)
		}
	}

	// The serialized report must round-trip with the documented field names.
	data, err := os.ReadFile(filepath.Join(orch.Cfg.OutputDir, ReportFileName))
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("report is not valid json: %v", err)
	}
	for _, key := range []string{"metadata", "extracted_sections", "subsection_analysis"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("report missing top-level key %q", key)
		}
	}
}

func TestProcessSkipsFailedDocument(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "good.pdf", "broken.pdf")
	orch := newTestOrchestrator(t, inputDir)
	orch.Extract = func(path string) ([]models.Segment, error) {
		if filepath.Base(path) == "broken.pdf" {
			return nil, errors.New("corrupt cross-reference table")
		}
		return fakeSegments(path), nil
	}

	report, err := orch.Process()
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if !reflect.DeepEqual(report.Metadata.InputDocuments, []string{"broken.pdf", "good.pdf"}) {
		t.Errorf("input documents = %v, want both listed", report.Metadata.InputDocuments)
	}
	for _, section := range report.ExtractedSections {
		if section.Document == "broken.pdf" {
			t.Errorf("failed document leaked into ranking: %+v", section)
		}
	}
}

func TestProcessEmptyInputDir(t *testing.T) {
	orch := newTestOrchestrator(t, t.TempDir())
	if _, err := orch.Process(); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("error = %v, want ErrNoDocuments", err)
	}
}

func TestProcessIgnoresUnsupportedFiles(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "notes.txt", "data.csv")
	orch := newTestOrchestrator(t, inputDir)
	if _, err := orch.Process(); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("error = %v, want ErrNoDocuments", err)
	}
}

func TestProcessAllExtractionsFail(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "a.pdf", "b.pdf")
	orch := newTestOrchestrator(t, inputDir)
	orch.Extract = func(path string) ([]models.Segment, error) {
		return nil, errors.New("encrypted document")
	}
	if _, err := orch.Process(); !errors.Is(err, ErrNoDocuments) {
		t.Fatalf("error = %v, want ErrNoDocuments", err)
	}
}

func TestProcessUnknownPersona(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "a.pdf")
	orch := newTestOrchestrator(t, inputDir)
	orch.Cfg.Persona = "astronaut"
	if _, err := orch.Process(); !errors.Is(err, knowledge.ErrUnknownPersona) {
		t.Fatalf("error = %v, want ErrUnknownPersona", err)
	}
}

func TestProcessUnknownJob(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "a.pdf")
	orch := newTestOrchestrator(t, inputDir)
	orch.Cfg.Job = "moonwalk"
	if _, err := orch.Process(); !errors.Is(err, knowledge.ErrUnknownJob) {
		t.Fatalf("error = %v, want ErrUnknownJob", err)
	}
}

func TestProcessTimeBudgetTruncates(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "a.pdf", "b.pdf", "c.pdf")
	orch := newTestOrchestrator(t, inputDir)
	orch.Cfg.WorkerCount = 1
	orch.Cfg.TimeBudget = 30 * time.Millisecond
	orch.Extract = func(path string) ([]models.Segment, error) {
		time.Sleep(60 * time.Millisecond)
		return fakeSegments(path), nil
	}

	report, err := orch.Process()
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	meta := report.Metadata
	if !meta.Partial {
		t.Fatal("truncated run not flagged partial")
	}
	if meta.PartialReason != "time budget exceeded" {
		t.Errorf("partial reason = %q", meta.PartialReason)
	}
	if len(meta.SkippedDocuments) == 0 {
		t.Fatal("no documents reported skipped")
	}
	if len(meta.InputDocuments) != 3 {
		t.Errorf("input documents = %v, want all three listed", meta.InputDocuments)
	}
	if len(report.ExtractedSections) == 0 {
		t.Error("partial run produced no ranked sections")
	}
}

func TestProcessMultilingualMetadata(t *testing.T) {
	inputDir := t.TempDir()
	writeInputFiles(t, inputDir, "en.pdf", "es.pdf")
	orch := newTestOrchestrator(t, inputDir)
	orch.Detector = perDocumentDetector{}
	orch.Extract = func(path string) ([]models.Segment, error) {
		doc := filepath.Base(path)
		if doc == "es.pdf" {
			return []models.Segment{
				models.NewSegment(doc, 1, "Metodología",
					"La metodología describe el análisis estadístico de los datos del estudio."),
			}, nil
		}
		return fakeSegments(path), nil
	}

	report, err := orch.Process()
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if !reflect.DeepEqual(report.Metadata.DetectedLanguages, []string{"en", "es"}) {
		t.Errorf("detected languages = %v, want [en es]", report.Metadata.DetectedLanguages)
	}
}

// perDocumentDetector picks the language from telltale words so segments of
// different documents get different tags.
type perDocumentDetector struct{}

func (perDocumentDetector) Detect(text string) string {
	if text == "" {
		return models.LanguageUnknown
	}
	lower := strings.ToLower(text)
	for _, marker := range []string{"metodología", "análisis", "estudio"} {
		if strings.Contains(lower, marker) {
			return "es"
		}
	}
	return "en"
}

func TestRoundSeconds(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want float64
	}{
		{d: 1500 * time.Millisecond, want: 1.5},
		{d: 123456 * time.Millisecond, want: 123.46},
		{d: 0, want: 0},
	}
	for _, tt := range tests {
		if got := roundSeconds(tt.d); got != tt.want {
			t.Errorf("roundSeconds(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

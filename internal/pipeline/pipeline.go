// Package pipeline drives a full analysis run: document discovery,
// concurrent extraction and language tagging, single-threaded scoring and
// ranking, report assembly, and serialization.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dtnitsch/personadoc/internal/common"
	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/analyzer"
	"github.com/dtnitsch/personadoc/pkg/db"
	"github.com/dtnitsch/personadoc/pkg/embedding"
	"github.com/dtnitsch/personadoc/pkg/extractor"
	"github.com/dtnitsch/personadoc/pkg/knowledge"
	"github.com/dtnitsch/personadoc/pkg/langid"
	"github.com/dtnitsch/personadoc/pkg/ranking"
)

// ErrNoDocuments is returned when no input document could be processed:
// either the input directory holds no supported files, or every extraction
// failed. Distinct from the partial time-budget case, which still succeeds.
var ErrNoDocuments = errors.New("no documents processed")

// ReportFileName is the serialized report filename within the output dir.
const ReportFileName = "persona_analysis.json"

// Orchestrator runs the batch. Base and Detector are read-only for the
// lifetime of a run; Store may be nil to skip run history.
type Orchestrator struct {
	Cfg      models.AnalyzeConfig
	Base     *knowledge.Base
	Detector langid.Detector
	Logger   *slog.Logger
	Store    *db.DB

	// Extract overrides document extraction, mainly for tests. Nil means
	// dispatch by file extension.
	Extract func(path string) ([]models.Segment, error)
}

// docJob is one unit of work for the extraction workers.
type docJob struct {
	index int
	path  string
}

// docResult is one document's extraction outcome.
type docResult struct {
	index    int
	filename string
	segments []models.Segment
	err      error
}

// Process executes the full pipeline and returns the assembled report.
// Per-document extraction failures are logged and skipped; only a zero
// success count or an unknown persona/job id is fatal.
func (o *Orchestrator) Process() (*models.Report, error) {
	start := time.Now()
	deadline := start.Add(o.Cfg.TimeBudget)

	profile, err := o.Base.Persona(o.Cfg.Persona)
	if err != nil {
		return nil, err
	}
	pattern, err := o.Base.Job(o.Cfg.Job)
	if err != nil {
		return nil, err
	}

	paths, err := o.listDocuments()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no supported files in %s", ErrNoDocuments, o.Cfg.InputDir)
	}

	var runID int64
	if o.Store != nil {
		if runID, err = o.Store.InsertRun(o.Cfg.Persona, o.Cfg.Job, o.Cfg.InputDir); err != nil {
			o.Logger.Warn("failed to record run", "error", err)
			runID = 0
		}
	}

	results, skipped := o.extractAll(paths, deadline)

	inputDocs := make([]string, 0, len(paths))
	langSet := make(map[string]struct{})
	var segments []models.Segment
	var failedDocs []string

	for _, res := range results {
		inputDocs = append(inputDocs, res.filename)
		if res.err != nil {
			o.Logger.Error("extraction failed, skipping document", "document", res.filename, "error", res.err)
			failedDocs = append(failedDocs, res.filename)
			o.recordDocument(runID, db.DocumentRecord{Filename: res.filename, Status: "failed", ErrorType: "extraction_error"})
			continue
		}
		for _, seg := range res.segments {
			langSet[seg.Language] = struct{}{}
		}
		segments = append(segments, res.segments...)
		o.recordDocument(runID, db.DocumentRecord{Filename: res.filename, SegmentCount: len(res.segments), Status: "extracted"})
	}
	for _, name := range skipped {
		inputDocs = append(inputDocs, name)
		o.recordDocument(runID, db.DocumentRecord{Filename: name, Status: "skipped", ErrorType: "time_budget"})
	}

	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: %d document(s) found, none extracted successfully", ErrNoDocuments, len(paths))
	}

	o.Logger.Info("extraction phase complete",
		"documents", len(inputDocs), "failed", len(failedDocs),
		"skipped", len(skipped), "segments", len(segments))

	provider := o.prepareProvider(segments)
	an := analyzer.New(o.Cfg, profile, pattern, provider)

	scored := make([]models.ScoredSegment, 0, len(segments))
	for _, seg := range segments {
		scored = append(scored, an.Score(seg))
	}

	engine := ranking.New(o.Cfg, profile, pattern, provider, an.QueryVector())
	ranked := engine.Rank(scored)

	report := &models.Report{
		Metadata: models.ReportMetadata{
			InputDocuments:        inputDocs,
			Persona:               o.Cfg.Persona,
			JobToBeDone:           o.Cfg.Job,
			ProcessingTimestamp:   start.Format(time.RFC3339),
			TotalSectionsFound:    len(ranked.Sections),
			TotalSubsectionsFound: len(ranked.Subsections),
			ProcessingTimeSeconds: roundSeconds(time.Since(start)),
			DetectedLanguages:     common.SortedKeys(langSet),
			SectionShortfall:      ranked.Shortfall,
		},
		ExtractedSections:  ranked.Sections,
		SubsectionAnalysis: ranked.Subsections,
	}
	if len(skipped) > 0 {
		report.Metadata.Partial = true
		report.Metadata.PartialReason = "time budget exceeded"
		report.Metadata.SkippedDocuments = skipped
	}

	outputPath, err := o.writeReport(report)
	if err != nil {
		return nil, err
	}
	o.Logger.Info("report written", "path", outputPath,
		"sections", len(ranked.Sections), "subsections", len(ranked.Subsections),
		"elapsed_seconds", report.Metadata.ProcessingTimeSeconds)

	if o.Store != nil && runID > 0 {
		if err := o.Store.FinishRun(runID, outputPath, report); err != nil {
			o.Logger.Warn("failed to finish run record", "error", err)
		}
		if err := o.Store.RecordSections(runID, ranked.Sections); err != nil {
			o.Logger.Warn("failed to record sections", "error", err)
		}
	}
	return report, nil
}

// listDocuments returns the supported files of the input dir sorted by name.
func (o *Orchestrator) listDocuments() ([]string, error) {
	entries, err := os.ReadDir(o.Cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !extractor.SupportedFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(o.Cfg.InputDir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// extractAll runs extraction and language tagging in a bounded worker pool.
// The deadline is checked between document submissions only: in-flight
// documents finish, unsubmitted ones are reported as skipped.
func (o *Orchestrator) extractAll(paths []string, deadline time.Time) ([]docResult, []string) {
	workers := o.Cfg.WorkerCount
	if workers < 1 {
		workers = 1
	}

	// The jobs channel is unbuffered on purpose: submission blocks until a
	// worker is free, so the deadline check between submissions tracks real
	// progress instead of racing ahead of the pool.
	jobs := make(chan docJob)
	resultCh := make(chan docResult, len(paths))

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go o.worker(w, &wg, jobs, resultCh)
	}

	submitted := 0
	var skipped []string
	for i, path := range paths {
		if time.Now().After(deadline) {
			o.Logger.Warn("time budget exceeded, truncating document queue",
				"submitted", submitted, "remaining", len(paths)-i)
			skipped = append(skipped, baseNames(paths[i:])...)
			break
		}
		jobs <- docJob{index: i, path: path}
		submitted++
	}
	close(jobs)

	wg.Wait()
	close(resultCh)

	results := make([]docResult, 0, submitted)
	for res := range resultCh {
		results = append(results, res)
	}
	// Collection order is nondeterministic; restore submission order.
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })
	return results, skipped
}

// worker extracts documents and tags each segment's language.
func (o *Orchestrator) worker(id int, wg *sync.WaitGroup, jobs <-chan docJob, results chan<- docResult) {
	defer wg.Done()
	for job := range jobs {
		filename := filepath.Base(job.path)
		o.Logger.Info("worker processing document", "worker", id, "document", filename)

		segments, err := o.extractOne(job.path)
		if err == nil {
			for i := range segments {
				segments[i].Language = o.Detector.Detect(segments[i].Text)
			}
		}
		results <- docResult{index: job.index, filename: filename, segments: segments, err: err}
	}
}

func (o *Orchestrator) extractOne(path string) ([]models.Segment, error) {
	if o.Extract != nil {
		return o.Extract(path)
	}
	ext, err := extractor.ForPath(path)
	if err != nil {
		return nil, err
	}
	return ext.Extract(path)
}

// prepareProvider builds the TF-IDF provider over the run corpus. Failure
// to prepare degrades to no semantic signal rather than aborting.
func (o *Orchestrator) prepareProvider(segments []models.Segment) embedding.Provider {
	if !o.Cfg.SemanticEnabled {
		return embedding.Disabled{}
	}
	corpus := make([]string, len(segments))
	for i, seg := range segments {
		corpus[i] = seg.Text
	}
	provider := embedding.NewTFIDF()
	if err := provider.Prepare(corpus); err != nil {
		o.Logger.Warn("semantic signal unavailable", "error", err)
		return embedding.Disabled{}
	}
	return provider
}

// writeReport serializes the report into the output directory.
func (o *Orchestrator) writeReport(report *models.Report) (string, error) {
	if err := common.EnsureDir(o.Cfg.OutputDir); err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	outputPath := filepath.Join(o.Cfg.OutputDir, ReportFileName)
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return outputPath, nil
}

func (o *Orchestrator) recordDocument(runID int64, doc db.DocumentRecord) {
	if o.Store == nil || runID == 0 {
		return
	}
	if err := o.Store.RecordDocument(runID, doc); err != nil {
		o.Logger.Warn("failed to record document", "document", doc.Filename, "error", err)
	}
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func roundSeconds(d time.Duration) float64 {
	return float64(int(d.Seconds()*100+0.5)) / 100
}

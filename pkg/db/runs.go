package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtnitsch/personadoc/models"
)

// RunRecord is one row of run history.
type RunRecord struct {
	RunID             int64
	Persona           string
	Job               string
	InputDir          string
	OutputPath        string
	StartedAt         time.Time
	ProcessingSeconds float64
	SectionCount      int
	SubsectionCount   int
	DetectedLanguages string
	Partial           bool
	PartialReason     string
}

// DocumentRecord is the per-document outcome of a run.
type DocumentRecord struct {
	Filename     string
	SegmentCount int
	Status       string
	ErrorType    string
}

// InsertRun starts a run row and returns its id.
func (db *DB) InsertRun(persona, job, inputDir string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (persona, job, input_dir)
		VALUES (?, ?, ?)
	`, persona, job, inputDir)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}
	return runID, nil
}

// FinishRun fills in the outcome columns of a run from its report.
func (db *DB) FinishRun(runID int64, outputPath string, report *models.Report) error {
	meta := report.Metadata
	_, err := db.Exec(`
		UPDATE runs
		SET output_path = ?, processing_seconds = ?, section_count = ?,
		    subsection_count = ?, detected_languages = ?, partial = ?, partial_reason = ?
		WHERE run_id = ?
	`, outputPath, meta.ProcessingTimeSeconds, meta.TotalSectionsFound,
		meta.TotalSubsectionsFound, strings.Join(meta.DetectedLanguages, ","),
		meta.Partial, meta.PartialReason, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return nil
}

// RecordDocument records one document's outcome within a run.
func (db *DB) RecordDocument(runID int64, doc DocumentRecord) error {
	_, err := db.Exec(`
		INSERT INTO run_documents (run_id, filename, segment_count, status, error_type)
		VALUES (?, ?, ?, ?, ?)
	`, runID, doc.Filename, doc.SegmentCount, doc.Status, doc.ErrorType)
	if err != nil {
		return fmt.Errorf("failed to record document: %w", err)
	}
	return nil
}

// RecordSections stores the ranked section list of a run.
func (db *DB) RecordSections(runID int64, sections []models.ExtractedSection) error {
	for _, s := range sections {
		_, err := db.Exec(`
			INSERT INTO run_sections (run_id, importance_rank, document, page, section_title, relevance_score, language)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, runID, s.ImportanceRank, s.Document, s.Page, s.SectionTitle, s.RelevanceScore, s.Language)
		if err != nil {
			return fmt.Errorf("failed to record section: %w", err)
		}
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, persona, job, input_dir, COALESCE(output_path, ''),
		       started_at, COALESCE(processing_seconds, 0), section_count,
		       subsection_count, COALESCE(detected_languages, ''),
		       partial, COALESCE(partial_reason, '')
		FROM runs
		ORDER BY run_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.RunID, &r.Persona, &r.Job, &r.InputDir, &r.OutputPath,
			&r.StartedAt, &r.ProcessingSeconds, &r.SectionCount,
			&r.SubsectionCount, &r.DetectedLanguages, &r.Partial, &r.PartialReason); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunDocuments returns the per-document outcomes of one run.
func (db *DB) RunDocuments(runID int64) ([]DocumentRecord, error) {
	rows, err := db.Query(`
		SELECT filename, segment_count, status, COALESCE(error_type, '')
		FROM run_documents
		WHERE run_id = ?
		ORDER BY doc_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentRecord
	for rows.Next() {
		var d DocumentRecord
		if err := rows.Scan(&d.Filename, &d.SegmentCount, &d.Status, &d.ErrorType); err != nil {
			return nil, fmt.Errorf("failed to scan run document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

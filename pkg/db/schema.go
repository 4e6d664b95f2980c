package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per analysis invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    persona TEXT NOT NULL,
    job TEXT NOT NULL,
    input_dir TEXT NOT NULL,
    output_path TEXT,
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    processing_seconds REAL,
    section_count INTEGER DEFAULT 0,
    subsection_count INTEGER DEFAULT 0,
    detected_languages TEXT,          -- comma-separated ISO codes
    partial BOOLEAN DEFAULT 0,
    partial_reason TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_persona ON runs(persona);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Per-document outcome of a run
CREATE TABLE IF NOT EXISTS run_documents (
    doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    filename TEXT NOT NULL,
    segment_count INTEGER DEFAULT 0,
    status TEXT NOT NULL,             -- extracted, failed, skipped
    error_type TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_documents_run ON run_documents(run_id);

-- Ranked sections of a run
CREATE TABLE IF NOT EXISTS run_sections (
    section_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    importance_rank INTEGER NOT NULL,
    document TEXT NOT NULL,
    page INTEGER NOT NULL,
    section_title TEXT,
    relevance_score REAL NOT NULL,
    language TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_sections_run ON run_sections(run_id);
CREATE INDEX IF NOT EXISTS idx_run_sections_rank ON run_sections(run_id, importance_rank);
`

package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/personadoc/models"
	"github.com/dtnitsch/personadoc/pkg/db"
	"github.com/dtnitsch/personadoc/pkg/knowledge"
	"github.com/dtnitsch/personadoc/pkg/langid"
)

// newLogger builds the JSON stderr logger used by all actions.
func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadBase resolves the knowledge base, merging a --knowledge file over the
// built-in tables when given.
func loadBase(c *cli.Context) (*knowledge.Base, error) {
	if path := c.String("knowledge"); path != "" {
		return knowledge.LoadFile(path)
	}
	return knowledge.Default(), nil
}

// AnalyzeAction runs the full pipeline from CLI flags.
func AnalyzeAction(c *cli.Context) error {
	logger := newLogger(c.Bool("quiet"))

	cfg := models.DefaultAnalyzeConfig()
	cfg.Persona = c.String("persona")
	cfg.Job = c.String("job")
	if c.IsSet("input") {
		cfg.InputDir = c.String("input")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}
	if c.IsSet("workers") {
		cfg.WorkerCount = c.Int("workers")
	}
	if c.IsSet("time-budget") {
		budget, err := time.ParseDuration(c.String("time-budget"))
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid time-budget duration: %v", err), 1)
		}
		cfg.TimeBudget = budget
	}
	if c.IsSet("top-sections") {
		cfg.TopSections = c.Int("top-sections")
	}
	if c.IsSet("top-subsections") {
		cfg.TopSubsections = c.Int("top-subsections")
	}
	if c.Bool("no-semantic") {
		cfg.SemanticEnabled = false
	}

	base, err := loadBase(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("knowledge base error: %v", err), 1)
	}

	var store *db.DB
	if !c.Bool("no-db") {
		store, err = db.Open()
		if err != nil {
			// Run history is best-effort; the analysis itself must not
			// depend on a writable database location.
			logger.Warn("run history disabled", "error", err)
		} else {
			defer store.Close()
		}
	}

	orch := &Orchestrator{
		Cfg:      cfg,
		Base:     base,
		Detector: langid.New(),
		Logger:   logger,
		Store:    store,
	}

	report, err := orch.Process()
	if err != nil {
		if errors.Is(err, knowledge.ErrUnknownPersona) || errors.Is(err, knowledge.ErrUnknownJob) {
			return cli.Exit(fmt.Sprintf("configuration error: %v", err), 1)
		}
		if errors.Is(err, ErrNoDocuments) {
			return cli.Exit(err.Error(), 1)
		}
		logger.Error("pipeline failed", "error", err)
		return cli.Exit(err.Error(), 2)
	}

	if report.Metadata.Partial {
		logger.Warn("partial report", "reason", report.Metadata.PartialReason,
			"skipped", len(report.Metadata.SkippedDocuments))
	}
	return nil
}

// PersonasAction lists the known persona and job ids.
func PersonasAction(c *cli.Context) error {
	base, err := loadBase(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("knowledge base error: %v", err), 1)
	}
	fmt.Printf("Personas: %s\n", strings.Join(base.PersonaIDs(), ", "))
	fmt.Printf("Jobs:     %s\n", strings.Join(base.JobIDs(), ", "))
	return nil
}

// RunsAction prints recent run history from the local database.
func RunsAction(c *cli.Context) error {
	store, err := db.Open()
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to open run history: %v", err), 2)
	}
	defer store.Close()

	runs, err := store.ListRuns(c.Int("limit"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to list runs: %v", err), 2)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, r := range runs {
		status := "complete"
		if r.Partial {
			status = "partial: " + r.PartialReason
		}
		fmt.Printf("#%d  %s  persona=%s job=%s sections=%d subsections=%d %.2fs [%s]\n",
			r.RunID, r.StartedAt.Format("2006-01-02 15:04"), r.Persona, r.Job,
			r.SectionCount, r.SubsectionCount, r.ProcessingSeconds, status)
		if c.Bool("verbose") {
			docs, err := store.RunDocuments(r.RunID)
			if err != nil {
				continue
			}
			for _, d := range docs {
				line := fmt.Sprintf("    %s  %s", d.Filename, d.Status)
				if d.ErrorType != "" {
					line += " (" + d.ErrorType + ")"
				}
				fmt.Println(line)
			}
		}
	}
	return nil
}

package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/personadoc/internal/pipeline"
)

func main() {
	app := &cli.App{
		Name:  "personadoc",
		Usage: "rank document sections by relevance to a persona and a job-to-be-done",
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Analyze the documents in an input directory and write a ranked report",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "persona",
						Usage:    "Persona id (e.g. researcher, student, analyst)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "job",
						Usage:    "Job-to-be-done id (e.g. literature_review, exam_preparation)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "input",
						Usage: "Input directory with PDF/HTML documents",
						Value: "input",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Output directory for the report",
						Value: "output",
					},
					&cli.StringFlag{
						Name:  "knowledge",
						Usage: "YAML file with additional persona/job definitions",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of extraction workers",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "time-budget",
						Usage: "Wall-clock budget for the run (Go duration)",
						Value: "300s",
					},
					&cli.IntFlag{
						Name:  "top-sections",
						Usage: "Number of ranked sections in the report",
						Value: 15,
					},
					&cli.IntFlag{
						Name:  "top-subsections",
						Usage: "Number of refined subsection entries",
						Value: 25,
					},
					&cli.BoolFlag{
						Name:  "no-semantic",
						Usage: "Disable the embedding similarity signal",
					},
					&cli.BoolFlag{
						Name:  "no-db",
						Usage: "Do not record run history",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
				Action: pipeline.AnalyzeAction,
			},
			{
				Name:  "personas",
				Usage: "List known persona and job ids",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "knowledge",
						Usage: "YAML file with additional persona/job definitions",
					},
				},
				Action: pipeline.PersonasAction,
			},
			{
				Name:  "runs",
				Usage: "Show recent analysis runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of runs to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "Include per-document outcomes",
					},
				},
				Action: pipeline.RunsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

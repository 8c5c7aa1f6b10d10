// Copyright 2025 Berkdoc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/berkdoc/docpipe"
	"github.com/berkdoc/docpipe/ai"
	"github.com/berkdoc/docpipe/core"
	"github.com/berkdoc/docpipe/dedup"
)

func main() {
	// Optional .env for threshold tuning and service hosts
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "docpipe",
		Usage: "Document ingestion and duplicate detection pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest documents from files (each file becomes one document)",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append(databaseFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner id the documents belong to",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "update",
						Usage: "Treat documents as updates of previously ingested files",
					},
				),
			},
			{
				Name:      "delete",
				Usage:     "Delete documents and every derived artifact",
				ArgsUsage: "DOCUMENT_ID [DOCUMENT_ID...]",
				Action:    deleteCommand,
				Flags: append(storageOnlyFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner id the documents belong to",
						Required: true,
					},
				),
			},
			{
				Name:   "detect-duplicates",
				Usage:  "Detect near-duplicate documents for an owner",
				Action: detectDuplicatesCommand,
				Flags: append(storageOnlyFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner id to scan",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Similarity threshold override (0 uses env/default)",
					},
				),
			},
			{
				Name:   "groups",
				Usage:  "Print recorded duplicate groups for an owner",
				Action: groupsCommand,
				Flags: append(storageOnlyFlags(),
					&cli.StringFlag{
						Name:     "owner",
						Aliases:  []string{"o"},
						Usage:    "Owner id to list",
						Required: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// databaseFlags covers commands that talk to the AI services.
func databaseFlags() []cli.Flag {
	defaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL (embedding and completion)",
			Value: defaults.EmbeddingHost,
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: defaults.EmbeddingModel,
		},
		&cli.StringFlag{
			Name:  "completion-model",
			Usage: "Completion model name for tags and summaries",
			Value: defaults.CompletionModel,
		},
	}
}

// storageOnlyFlags covers commands that never call the AI services.
func storageOnlyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

func openDatabase(c *cli.Context) (*docpipe.Database, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithCompletionModel(c.String("completion-model")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := docpipe.NewDatabase(c.String("db"), docpipe.WithAIConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	owner := c.String("owner")
	kind := core.DocumentCreated
	if c.Bool("update") {
		kind = core.DocumentUpdated
	}

	failures := 0
	for _, path := range c.Args().Slice() {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		event := &core.Event{
			Kind:       kind,
			DocumentID: path,
			Title:      filepath.Base(path),
			Content:    string(content),
			Source:     path,
			OwnerID:    owner,
		}

		done, err := pipeline.HandleEvent(ctx, event)
		if err != nil {
			return fmt.Errorf("failed to submit %s: %w", path, err)
		}
		for stageErr := range done {
			if stageErr != nil {
				failures++
			}
		}
		fmt.Fprintf(os.Stderr, "ingested %s\n", path)
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "completed with %d failed stages (see log)\n", failures)
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one document id is required")
	}

	db, err := docpipe.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	ctx := context.Background()
	owner := c.String("owner")

	for _, documentID := range c.Args().Slice() {
		event := &core.Event{
			Kind:       core.DocumentDeleted,
			DocumentID: documentID,
			OwnerID:    owner,
		}
		if _, err := pipeline.HandleEvent(ctx, event); err != nil {
			return fmt.Errorf("failed to delete %s: %w", documentID, err)
		}
		fmt.Fprintf(os.Stderr, "deleted %s\n", documentID)
	}
	return nil
}

func detectDuplicatesCommand(c *cli.Context) error {
	db, err := docpipe.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	var opts []dedup.Option
	if threshold := c.Float64("threshold"); threshold > 0 {
		cfg := dedup.ConfigFromEnv()
		cfg.SimilarityThreshold = float32(threshold)
		opts = append(opts, dedup.WithConfig(cfg))
	}

	detector, err := db.NewDuplicateDetector(opts...)
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	created, err := detector.DetectDocumentDuplicates(context.Background(), c.String("owner"))
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	fmt.Printf("created %d duplicate pairs\n", created)
	return nil
}

func groupsCommand(c *cli.Context) error {
	db, err := docpipe.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	detector, err := db.NewDuplicateDetector()
	if err != nil {
		return fmt.Errorf("failed to create detector: %w", err)
	}

	groups, err := detector.DuplicateGroups(context.Background(), c.String("owner"))
	if err != nil {
		return fmt.Errorf("failed to load groups: %w", err)
	}

	for i, group := range groups {
		fmt.Printf("group %d: %s\n", i+1, strings.Join(group, ", "))
	}
	if len(groups) == 0 {
		fmt.Println("no duplicate groups recorded")
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

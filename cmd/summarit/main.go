// Copyright 2025 Poiesic Systems
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
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/poiesic/summarit"
	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/reconcile"
)

func main() {
	app := &cli.App{
		Name:  "summarit",
		Usage: "Document summarization pipeline",
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
				Name:  "ingest",
				Usage: "Ingest a document and produce its summary",
				Subcommands: []*cli.Command{
					{
						Name:      "file",
						Usage:     "Ingest a file (pdf, txt, doc, docx, xls, xlsx)",
						ArgsUsage: "<path>",
						Action:    ingestFileCommand,
						Flags:     append(dbFlags(), aiFlags()...),
					},
					{
						Name:      "text",
						Usage:     "Ingest text read from stdin",
						ArgsUsage: "[label]",
						Action:    ingestTextCommand,
						Flags:     append(dbFlags(), aiFlags()...),
					},
				},
			},
			{
				Name:  "items",
				Usage: "Inspect ingested items",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List the most recent items",
						Action: listItemsCommand,
						Flags: append(dbFlags(),
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum number of items to show",
								Value: 20,
							},
						),
					},
					{
						Name:      "show",
						Usage:     "Show one item including its summary",
						ArgsUsage: "<id>",
						Action:    showItemCommand,
						Flags:     dbFlags(),
					},
				},
			},
			{
				Name:   "reconcile",
				Usage:  "Resolve items stuck in the pending state",
				Action: reconcileCommand,
				Flags: append(append(dbFlags(), aiFlags()...),
					&cli.DurationFlag{
						Name:  "older-than",
						Usage: "Only touch pending items older than this",
						Value: 10 * time.Minute,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts per model call",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent model calls",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N items",
						Value: 10,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "provider",
			Usage: "AI provider (ollama or openai)",
			Value: ai.ProviderOllama,
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "AI service host URL",
			Value: "http://localhost:11434",
		},
		&cli.StringFlag{
			Name:  "model",
			Usage: "Model name",
			Value: "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:  "response-field",
			Usage: "Token field name in the streamed response",
			Value: "response",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Model call timeout",
			Value: 2 * time.Minute,
		},
	}
}

func openDatabase(c *cli.Context) (*summarit.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithProvider(c.String("provider")),
		ai.WithHost(c.String("host")),
		ai.WithModel(c.String("model")),
		ai.WithResponseField(c.String("response-field")),
		ai.WithTimeout(c.Duration("timeout")),
	)

	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := summarit.NewDatabase(c.String("db"), summarit.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestFileCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one file path argument")
	}
	path := c.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	receipt, err := db.IngestFile(context.Background(), filepath.Base(path), "", data)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Item %d ingested\n\n%s\n", receipt.ItemID, receipt.Summary)
	return nil
}

func ingestTextCommand(c *cli.Context) error {
	label := c.Args().First()

	text, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	receipt, err := db.IngestText(context.Background(), string(text), label)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("Item %d ingested\n\n%s\n", receipt.ItemID, receipt.Summary)
	return nil
}

func listItemsCommand(c *cli.Context) error {
	db, err := summarit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	items, err := db.RecentItems(context.Background(), c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list items: %w", err)
	}

	if len(items) == 0 {
		fmt.Println("No items found")
		return nil
	}

	for _, item := range items {
		name := item.OriginalName
		if name == "" {
			name = "(pasted text)"
		}
		fmt.Printf("%6d  %-10s  %-19s  %s\n",
			item.Id, item.State, item.CreatedAt.Format("2006-01-02 15:04:05"), name)
	}
	return nil
}

func showItemCommand(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one item id argument")
	}

	id, err := strconv.ParseUint(c.Args().First(), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", c.Args().First())
	}

	db, err := summarit.NewDatabase(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	item, err := db.GetItem(context.Background(), core.ID(id))
	if err != nil {
		return fmt.Errorf("failed to load item %d: %w", id, err)
	}

	fmt.Printf("Id:       %d\n", item.Id)
	fmt.Printf("Source:   %s\n", item.Source)
	if item.OriginalName != "" {
		fmt.Printf("Name:     %s\n", item.OriginalName)
	}
	if item.Format != core.FormatNone {
		fmt.Printf("Format:   %s\n", item.Format)
	}
	fmt.Printf("State:    %s\n", item.State)
	fmt.Printf("Created:  %s\n", item.CreatedAt.Format(time.RFC3339))
	fmt.Printf("Updated:  %s\n", item.UpdatedAt.Format(time.RFC3339))
	if item.LastErrorKind != "" {
		fmt.Printf("Error:    %s (%s)\n", item.LastErrorMessage, item.LastErrorKind)
	}
	if item.Summary != "" {
		fmt.Printf("\n%s\n", item.Summary)
	}
	return nil
}

func reconcileCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	config := &reconcile.Config{
		OlderThan:      c.Duration("older-than"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		PoolSize:       c.Int("pool-size"),
		ReportInterval: c.Int("report-interval"),
		PromptTemplate: "Summarize this:\n%s",
	}

	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}
	if config.PoolSize <= 0 {
		return fmt.Errorf("pool-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}

	sweeper, err := db.NewSweeper(config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create sweeper: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Model: %s @ %s\n\n", c.String("model"), c.String("host"))

	result, err := sweeper.Run(context.Background())
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	if result.Failed > 0 {
		fmt.Fprintf(os.Stderr, "%d items moved to the error state\n", result.Failed)
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

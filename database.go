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


package summarit

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/ai/ollama"
	"github.com/poiesic/summarit/ai/openai"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/extract"
	"github.com/poiesic/summarit/ingestion"
	"github.com/poiesic/summarit/reconcile"
	"github.com/poiesic/summarit/storage"
	"github.com/poiesic/summarit/storage/badger"
)

// Database bundles the storage backend, the item repository, and the AI
// provider into one handle callers can open and close as a unit.
type Database struct {
	backend  *badger.Backend
	itemRepo storage.ItemRepository
	provider ai.AIProvider
	pipeline *ingestion.Pipeline
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.AIProvider
}

// WithAIConfig sets the AI service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithAIProvider injects a pre-built AI provider, bypassing provider
// construction from config. Tests use this to run against a mock.
func WithAIProvider(provider ai.AIProvider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// NewDatabase opens the item store at filePath and builds the AI provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	itemRepo, err := badger.NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = newProvider(options.aiConfig)
		if err != nil {
			itemRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	pipeline, err := ingestion.NewPipeline(itemRepo, extract.NewExtractor(), provider.Summarizer())
	if err != nil {
		provider.Close()
		itemRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		itemRepo: itemRepo,
		provider: provider,
		pipeline: pipeline,
		logger:   slog.Default(),
	}, nil
}

func newProvider(config *ai.Config) (ai.AIProvider, error) {
	switch config.Provider {
	case ai.ProviderOllama:
		return ollama.NewProvider(config)
	case ai.ProviderOpenAI:
		return openai.NewProvider(config)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", config.Provider)
	}
}

func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.itemRepo.Close(); err != nil {
		db.logger.Error("error closing item repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ItemRepository() storage.ItemRepository {
	return db.itemRepo
}

// IngestFile runs the full ingestion flow for an uploaded file.
func (db *Database) IngestFile(ctx context.Context, filename, mediaType string, data []byte) (*ingestion.Receipt, error) {
	return db.pipeline.IngestFile(ctx, filename, mediaType, data)
}

// IngestText runs the ingestion flow for directly pasted text.
func (db *Database) IngestText(ctx context.Context, text, label string) (*ingestion.Receipt, error) {
	return db.pipeline.IngestText(ctx, text, label)
}

// GetItem retrieves a single item by ID.
func (db *Database) GetItem(ctx context.Context, id core.ID) (*core.Item, error) {
	return db.itemRepo.GetItem(ctx, id)
}

// RecentItems retrieves the N most recently created items, newest first.
func (db *Database) RecentItems(ctx context.Context, limit int) ([]*core.Item, error) {
	return db.itemRepo.GetRecentItems(ctx, limit)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.itemRepo, extract.NewExtractor(), db.provider.Summarizer(), opts...)
}

func (db *Database) NewSweeper(config *reconcile.Config, progress io.Writer) (*reconcile.Sweeper, error) {
	return reconcile.NewSweeper(db.itemRepo, db.provider.Summarizer(), config, progress)
}

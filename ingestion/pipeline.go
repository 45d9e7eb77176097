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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/extract"
	"github.com/poiesic/summarit/storage"
)

const (
	// DefaultMaxPayloadSize caps uploaded file size at 5 MiB.
	DefaultMaxPayloadSize = 5 * 1024 * 1024

	// DefaultMinTextLength is the minimum pasted-text length worth
	// summarizing.
	DefaultMinTextLength = 50

	// DefaultPromptTemplate wraps the raw text for the model call.
	DefaultPromptTemplate = "Summarize this:\n%s"
)

// Receipt reports the outcome of a successful ingestion.
type Receipt struct {
	ItemID  core.ID
	Summary string
}

// Pipeline runs the ingest flow: validate, extract, persist pending,
// summarize, settle to a terminal state. Once an item is persisted it always
// ends Completed or Error before the call returns; no item is left Pending.
type Pipeline struct {
	repo           storage.ItemRepository
	extractor      *extract.Extractor
	summarizer     ai.Summarizer
	maxPayloadSize int
	minTextLength  int
	promptTemplate string
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithMaxPayloadSize overrides the uploaded file size limit in bytes.
func WithMaxPayloadSize(size int) Option {
	return func(p *Pipeline) {
		p.maxPayloadSize = size
	}
}

// WithMinTextLength overrides the minimum pasted-text length.
func WithMinTextLength(length int) Option {
	return func(p *Pipeline) {
		p.minTextLength = length
	}
}

// WithPromptTemplate overrides the prompt wrapper. The template must contain
// exactly one %s verb for the raw text.
func WithPromptTemplate(template string) Option {
	return func(p *Pipeline) {
		p.promptTemplate = template
	}
}

// NewPipeline creates an ingestion Pipeline.
func NewPipeline(repo storage.ItemRepository, extractor *extract.Extractor, summarizer ai.Summarizer, opts ...Option) (*Pipeline, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}
	if extractor == nil {
		return nil, ErrNilExtractor
	}
	if summarizer == nil {
		return nil, ErrNilSummarizer
	}

	p := &Pipeline{
		repo:           repo,
		extractor:      extractor,
		summarizer:     summarizer,
		maxPayloadSize: DefaultMaxPayloadSize,
		minTextLength:  DefaultMinTextLength,
		promptTemplate: DefaultPromptTemplate,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// IngestFile runs the full flow for an uploaded file. The format comes from
// the filename extension, falling back to the media type hint when the
// extension is missing or unknown. Validation and extraction failures
// persist nothing; a model failure after persistence leaves the item in
// StateError and returns the failure wrapped in ErrSummarizationFailed.
func (p *Pipeline) IngestFile(ctx context.Context, filename, mediaType string, data []byte) (*Receipt, error) {
	format, err := core.ParseFormat(filepath.Ext(filename))
	if err != nil {
		format, err = core.ParseMediaType(mediaType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, filename, mediaType)
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyInput, filename)
	}
	if len(data) > p.maxPayloadSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrPayloadTooLarge, len(data), p.maxPayloadSize)
	}

	rawText, err := p.extractor.Extract(ctx, data, format)
	if err != nil {
		p.logger.Warn("extraction failed", "file", filename, "format", format.String(), "error", err)
		return nil, err
	}

	item := &core.Item{
		Source:       core.SourceKindFile,
		OriginalName: filename,
		Format:       format,
		RawText:      rawText,
		ContentHash:  core.HashContent(rawText),
		State:        core.StatePending,
	}

	return p.persistAndSummarize(ctx, item)
}

// IngestText runs the flow for directly pasted text. No extraction step; the
// text is the raw text. The label is an optional display name.
func (p *Pipeline) IngestText(ctx context.Context, text, label string) (*Receipt, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}
	if len(trimmed) < p.minTextLength {
		return nil, fmt.Errorf("%w: %d characters, minimum %d", ErrTextTooShort, len(trimmed), p.minTextLength)
	}

	item := &core.Item{
		Source:       core.SourceKindText,
		OriginalName: strings.TrimSpace(label),
		RawText:      trimmed,
		ContentHash:  core.HashContent(trimmed),
		State:        core.StatePending,
	}

	return p.persistAndSummarize(ctx, item)
}

// persistAndSummarize writes the pending item, calls the model, and settles
// the item into a terminal state.
func (p *Pipeline) persistAndSummarize(ctx context.Context, item *core.Item) (*Receipt, error) {
	stored, err := p.repo.AddItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("persist pending item: %w", err)
	}

	p.logger.Debug("item persisted",
		"id", stored.Id,
		"source", stored.Source.String(),
		"length", len(stored.RawText))

	summary, err := p.summarizer.Summarize(ctx, fmt.Sprintf(p.promptTemplate, stored.RawText))
	if err != nil {
		kind := ai.ErrorKind(err)
		p.logger.Warn("summarization failed", "id", stored.Id, "kind", kind, "error", err)

		if _, failErr := p.repo.FailItem(ctx, stored.Id, kind, err.Error()); failErr != nil {
			p.logger.Error("failed to mark item as errored", "id", stored.Id, "error", failErr)
		}
		return nil, fmt.Errorf("%w: item %d: %w", ErrSummarizationFailed, stored.Id, err)
	}

	if _, err := p.repo.CompleteItem(ctx, stored.Id, summary); err != nil {
		return nil, fmt.Errorf("complete item %d: %w", stored.Id, err)
	}

	p.logger.Info("item ingested", "id", stored.Id, "summary_length", len(summary))

	return &Receipt{ItemID: stored.Id, Summary: summary}, nil
}

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


package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/summarit/core"
)

// Strategy converts raw bytes of one file format into plain text.
// Implementations are pure: no persistence, no mutation of the input.
// Parse failures return an error wrapping ErrExtractionFailed; partial or
// corrupted text is never returned silently.
type Strategy interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Extractor dispatches extraction over the closed set of accepted formats.
// Each format maps to exactly one Strategy; adding a format means adding a
// strategy, not growing a conditional.
type Extractor struct {
	strategies map[core.Format]Strategy
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRunner sets the command runner used by the legacy doc/xls strategies.
// Tests inject a mock runner here.
func WithRunner(runner CommandRunner) Option {
	return func(e *Extractor) {
		e.strategies[core.FormatDOC] = &legacyStrategy{runner: runner, tool: "antiword"}
		e.strategies[core.FormatXLS] = &legacyStrategy{runner: runner, tool: "xls2csv"}
	}
}

// WithStrategy replaces the strategy for one format.
func WithStrategy(format core.Format, strategy Strategy) Option {
	return func(e *Extractor) {
		e.strategies[format] = strategy
	}
}

// NewExtractor creates an Extractor with one strategy per accepted format.
func NewExtractor(opts ...Option) *Extractor {
	runner := &execRunner{}
	e := &Extractor{
		strategies: map[core.Format]Strategy{
			core.FormatTXT:  &plainTextStrategy{},
			core.FormatPDF:  &pdfStrategy{},
			core.FormatDOC:  &legacyStrategy{runner: runner, tool: "antiword"},
			core.FormatDOCX: &docxStrategy{},
			core.FormatXLS:  &legacyStrategy{runner: runner, tool: "xls2csv"},
			core.FormatXLSX: &xlsxStrategy{},
		},
	}

	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract converts the bytes of the given format into plain text.
// Extraction that yields no text at all fails rather than producing an
// empty item downstream.
func (e *Extractor) Extract(ctx context.Context, data []byte, format core.Format) (string, error) {
	strategy, ok := e.strategies[format]
	if !ok {
		return "", fmt.Errorf("%w: no strategy for format %q", core.ErrUnknownFormat, format)
	}

	text, err := strategy.Extract(ctx, data)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content in %s input", ErrExtractionFailed, format)
	}
	return text, nil
}

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


package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/summarit/ai"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/storage"
)

// Config holds configuration for a reconciliation sweep.
type Config struct {
	// OlderThan is the minimum age of a pending item before the sweep
	// touches it. Younger pending items are assumed to be in flight.
	OlderThan time.Duration

	// MaxRetries is the maximum number of attempts per model call
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// PoolSize is the number of concurrent model calls
	PoolSize int

	// ReportInterval is how often to report progress (number of items)
	ReportInterval int

	// PromptTemplate wraps the raw text for the model call. Must match the
	// ingestion prompt so swept items get equivalent summaries.
	PromptTemplate string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	return &Config{
		OlderThan:      10 * time.Minute,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
		PoolSize:       poolSize,
		ReportInterval: 10,
		PromptTemplate: "Summarize this:\n%s",
	}
}

// Result summarizes a completed sweep.
type Result struct {
	// Scanned is the number of stale pending items found.
	Scanned int
	// Resolved is the number of items summarized and completed.
	Resolved int
	// Failed is the number of items moved to the error state.
	Failed int
}

// Sweeper re-resolves items stuck in the pending state. An ingestion run
// that crashed between the pending write and the terminal write leaves
// such items behind; the sweep retries the model call and settles each one
// into Completed or Error so the lifecycle never dangles.
type Sweeper struct {
	repo       storage.ItemRepository
	summarizer ai.Summarizer
	config     *Config
	progress   io.Writer
	logger     *slog.Logger
}

// NewSweeper creates a new sweeper.
// progress: where to write progress output (typically os.Stderr)
func NewSweeper(repo storage.ItemRepository, summarizer ai.Summarizer, config *Config, progress io.Writer) (*Sweeper, error) {
	if repo == nil {
		return nil, ErrNilRepository
	}
	if summarizer == nil {
		return nil, ErrNilSummarizer
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Sweeper{
		repo:       repo,
		summarizer: summarizer,
		config:     config,
		progress:   progress,
		logger:     slog.Default(),
	}, nil
}

// Run executes one sweep over the stale pending items.
// Every scanned item ends in a terminal state: Completed when the retried
// model call succeeds, Error when it does not. Per-item failures do not
// abort the sweep.
func (s *Sweeper) Run(ctx context.Context) (*Result, error) {
	cutoff := time.Now().UTC().Add(-s.config.OlderThan)
	items, err := s.repo.GetItemsByState(ctx, core.StatePending, cutoff, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending items: %w", err)
	}

	if len(items) == 0 {
		fmt.Fprintf(s.progress, "No stale pending items found\n")
		return &Result{}, nil
	}

	fmt.Fprintf(s.progress, "Reconciling %d stale pending items (pool size: %d)\n",
		len(items), s.config.PoolSize)

	pool, err := ants.NewPool(s.config.PoolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	tracker := NewProgressTracker(s.progress, len(items), s.config.ReportInterval)
	tracker.Start()

	var resolved, failed atomic.Int64
	var wg sync.WaitGroup

	for _, item := range items {
		item := item
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if s.resolve(ctx, item) {
				resolved.Add(1)
			} else {
				failed.Add(1)
			}
			tracker.Increment(1)
		}); err != nil {
			wg.Done()
			failed.Add(1)
			s.logger.Error("error submitting item to pool", "id", item.Id, "err", err)
		}
	}

	wg.Wait()
	tracker.Finish()

	result := &Result{
		Scanned:  len(items),
		Resolved: int(resolved.Load()),
		Failed:   int(failed.Load()),
	}

	elapsed := tracker.Elapsed()
	fmt.Fprintf(s.progress, "Sweep complete. Resolved %d of %d items in %v (%d moved to error)\n",
		result.Resolved, result.Scanned, elapsed.Round(time.Second), result.Failed)

	return result, nil
}

// resolve retries the model call for one item and settles its state.
// Returns true when the item completed.
func (s *Sweeper) resolve(ctx context.Context, item *core.Item) bool {
	var summary string
	err := RetryWithBackoff(ctx, func() error {
		var err error
		summary, err = s.summarizer.Summarize(ctx, fmt.Sprintf(s.config.PromptTemplate, item.RawText))
		return err
	}, s.config.MaxRetries, s.config.RetryDelay)

	if err != nil {
		kind := ai.ErrorKind(err)
		s.logger.Warn("sweep could not summarize item", "id", item.Id, "kind", kind, "error", err)

		if _, failErr := s.repo.FailItem(ctx, item.Id, kind, err.Error()); failErr != nil {
			s.logger.Error("error marking stale item as errored", "id", item.Id, "err", failErr)
		}
		return false
	}

	if _, err := s.repo.CompleteItem(ctx, item.Id, summary); err != nil {
		s.logger.Error("error completing stale item", "id", item.Id, "err", err)
		return false
	}
	return true
}

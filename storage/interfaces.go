package storage

import (
	"context"
	"time"

	"github.com/poiesic/summarit/core"
)

// Repository provides common storage operations shared by all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ItemRepository provides operations for managing ingested items.
//
// Items are created in StatePending and resolved through exactly one of
// CompleteItem or FailItem. The two terminal writes are idempotent: applying
// the same terminal outcome again is a no-op success, while a conflicting
// terminal transition returns ErrInvalidTransition.
type ItemRepository interface {
	Repository

	// AddItem persists a new item in StatePending.
	// Generates an ID from the sequence and sets CreatedAt/UpdatedAt.
	// The item must pass core.ValidateItem with State == StatePending.
	// Returns the item with the generated ID and timestamps populated.
	AddItem(ctx context.Context, item *core.Item) (*core.Item, error)

	// CompleteItem transitions an item to StateCompleted and stores its
	// summary. Returns ErrNotFound if the item doesn't exist and
	// ErrInvalidTransition if the item already ended in StateError.
	CompleteItem(ctx context.Context, id core.ID, summary string) (*core.Item, error)

	// FailItem transitions an item to StateError, recording the error kind
	// and message. The summary stays empty. Returns ErrNotFound if the item
	// doesn't exist and ErrInvalidTransition if the item already ended in
	// StateCompleted.
	FailItem(ctx context.Context, id core.ID, errKind, errMsg string) (*core.Item, error)

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id core.ID) (*core.Item, error)

	// GetItems retrieves multiple items by their IDs.
	// Returns only the items that exist (no error for missing items).
	GetItems(ctx context.Context, ids ...core.ID) ([]*core.Item, error)

	// GetItemsByState retrieves items in the given state created before
	// olderThan, ordered by creation time ascending. A zero olderThan means
	// no age cutoff. Serves the reconciliation sweep over stale pending
	// items.
	GetItemsByState(ctx context.Context, state core.ItemState, olderThan time.Time, limit int) ([]*core.Item, error)

	// GetRecentItems retrieves the N most recently created items,
	// most recent first.
	GetRecentItems(ctx context.Context, limit int) ([]*core.Item, error)

	// DeleteItems removes items by their IDs, along with their state index
	// entries. Returns ErrNotFound if any item doesn't exist.
	DeleteItems(ctx context.Context, ids ...core.ID) error
}

package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
type ItemRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(backend *Backend) (*ItemRepository, error) {
	idSeq, err := backend.GetSequence(itemIDSeq)
	if err != nil {
		return nil, err
	}

	return &ItemRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ItemRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddItem persists a new item in StatePending.
func (r *ItemRepository) AddItem(ctx context.Context, item *core.Item) (*core.Item, error) {
	if item == nil {
		return nil, core.ErrInvalidItem
	}
	if item.State == 0 {
		item.State = core.StatePending
	}
	if item.State != core.StatePending {
		return nil, storage.ErrInvalidTransition
	}
	if err := core.ValidateItem(item); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		item.Id = core.ID(nextID)

		item.CreatedAt = time.Now().UTC()
		item.UpdatedAt = item.CreatedAt

		if err := r.writeItem(tx, item); err != nil {
			return err
		}

		idValue := storage.MarshalID(item.Id)
		if err := tx.Set(makeItemDateKey(item.CreatedAt, item.Id), idValue); err != nil {
			return err
		}
		if err := tx.Set(makeItemStateKey(item.State, item.CreatedAt, item.Id), idValue); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return item, nil
}

// CompleteItem transitions an item to StateCompleted and stores its summary.
func (r *ItemRepository) CompleteItem(ctx context.Context, id core.ID, summary string) (*core.Item, error) {
	return r.transition(id, core.StateCompleted, func(item *core.Item) {
		item.Summary = summary
	})
}

// FailItem transitions an item to StateError, recording the error cause.
func (r *ItemRepository) FailItem(ctx context.Context, id core.ID, errKind, errMsg string) (*core.Item, error) {
	return r.transition(id, core.StateError, func(item *core.Item) {
		item.LastErrorKind = errKind
		item.LastErrorMessage = errMsg
	})
}

// transition applies a terminal state change to an item.
// Re-applying the state the item is already in is a no-op success, so a
// retried terminal write after a store hiccup cannot corrupt the record.
func (r *ItemRepository) transition(id core.ID, target core.ItemState, apply func(*core.Item)) (*core.Item, error) {
	var result *core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := r.readItem(tx, makeItemKey(id))
		if err != nil {
			return err
		}

		if item.State == target {
			result = item
			return nil
		}

		if !item.State.CanTransitionTo(target) {
			return storage.ErrInvalidTransition
		}

		if err := tx.Delete(makeItemStateKey(item.State, item.CreatedAt, item.Id)); err != nil {
			return err
		}

		item.State = target
		apply(item)
		item.UpdatedAt = time.Now().UTC()

		if err := r.writeItem(tx, item); err != nil {
			return err
		}
		if err := tx.Set(makeItemStateKey(item.State, item.CreatedAt, item.Id), storage.MarshalID(item.Id)); err != nil {
			return err
		}

		result = item
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetItem retrieves a single item by ID.
func (r *ItemRepository) GetItem(ctx context.Context, id core.ID) (*core.Item, error) {
	var item *core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		item, err = r.readItem(tx, makeItemKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItems retrieves multiple items by their IDs.
// Missing items are skipped without error.
func (r *ItemRepository) GetItems(ctx context.Context, ids ...core.ID) ([]*core.Item, error) {
	items := make([]*core.Item, 0, len(ids))
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := r.readItem(tx, makeItemKey(id))
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					continue
				}
				return err
			}
			items = append(items, item)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetItemsByState retrieves items in the given state created before
// olderThan, oldest first.
func (r *ItemRepository) GetItemsByState(ctx context.Context, state core.ItemState, olderThan time.Time, limit int) ([]*core.Item, error) {
	if err := core.ValidateItemState(state); err != nil {
		return nil, err
	}

	var items []*core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeItemStateScanPrefix(state)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(items) >= limit {
				break
			}

			key := iter.Item().Key()
			createdAt, ok := itemStateKeyCreatedAt(key, state)
			if !ok {
				continue
			}
			// Index keys sort by creation time, so everything past the
			// cutoff can be skipped in one break.
			if !olderThan.IsZero() && !createdAt.Before(olderThan) {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			item, err := r.readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetRecentItems retrieves the N most recently created items, newest first.
func (r *ItemRepository) GetRecentItems(ctx context.Context, limit int) ([]*core.Item, error) {
	var items []*core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Reverse iteration over the date index yields newest first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		startKey := makePartialItemDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(itemDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(items) < limit; iter.Next() {
			key := iter.Item().Key()
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			item, err := r.readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItems removes items and their index entries.
func (r *ItemRepository) DeleteItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := r.readItem(tx, makeItemKey(id))
			if err != nil {
				return err
			}

			if err := tx.Delete(makeItemKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeItemDateKey(item.CreatedAt, item.Id)); err != nil {
				return err
			}
			if err := tx.Delete(makeItemStateKey(item.State, item.CreatedAt, item.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// writeItem serializes and stores an item record.
func (r *ItemRepository) writeItem(tx *badger.Txn, item *core.Item) error {
	return tx.Set(makeItemKey(item.Id), storage.MarshalItem(item))
}

// readItem reads and deserializes an item record.
func (r *ItemRepository) readItem(tx *badger.Txn, key []byte) (*core.Item, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var item *core.Item
	err = entry.Value(func(val []byte) error {
		var err error
		item, err = storage.UnmarshalItem(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/summarit/core"
	"github.com/poiesic/summarit/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupItemRepository(t *testing.T) storage.ItemRepository {
	t.Helper()

	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)

	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	return repo
}

func pendingItem(text string) *core.Item {
	return &core.Item{
		Source:       core.SourceKindFile,
		OriginalName: "notes.txt",
		Format:       core.FormatTXT,
		RawText:      text,
		State:        core.StatePending,
		ContentHash:  core.HashContent(text),
	}
}

func TestAddItem(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	added, err := repo.AddItem(ctx, pendingItem("first item text"))
	require.NoError(t, err)
	require.NotNil(t, added)

	assert.NotZero(t, added.Id)
	assert.Equal(t, core.StatePending, added.State)
	assert.False(t, added.CreatedAt.IsZero())
	assert.Equal(t, added.CreatedAt, added.UpdatedAt)

	got, err := repo.GetItem(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, added, got)
}

func TestAddItem_DistinctIDs(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	a, err := repo.AddItem(ctx, pendingItem("identical content"))
	require.NoError(t, err)
	b, err := repo.AddItem(ctx, pendingItem("identical content"))
	require.NoError(t, err)

	// Identical content still produces independent items
	assert.NotEqual(t, a.Id, b.Id)
	assert.Equal(t, a.ContentHash, b.ContentHash)
}

func TestAddItem_Invalid(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	t.Run("nil item", func(t *testing.T) {
		_, err := repo.AddItem(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("empty raw text", func(t *testing.T) {
		item := pendingItem("text")
		item.RawText = ""
		_, err := repo.AddItem(ctx, item)
		assert.ErrorIs(t, err, core.ErrInvalidItem)
	})

	t.Run("non-pending state", func(t *testing.T) {
		item := pendingItem("text")
		item.State = core.StateCompleted
		item.Summary = "s"
		_, err := repo.AddItem(ctx, item)
		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	})
}

func TestCompleteItem(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	added, err := repo.AddItem(ctx, pendingItem("text to summarize"))
	require.NoError(t, err)

	completed, err := repo.CompleteItem(ctx, added.Id, "the summary")
	require.NoError(t, err)

	assert.Equal(t, core.StateCompleted, completed.State)
	assert.Equal(t, "the summary", completed.Summary)
	assert.Equal(t, added.RawText, completed.RawText)

	got, err := repo.GetItem(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StateCompleted, got.State)
	assert.Equal(t, "the summary", got.Summary)
}

func TestFailItem(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	added, err := repo.AddItem(ctx, pendingItem("text that will fail"))
	require.NoError(t, err)

	failed, err := repo.FailItem(ctx, added.Id, "service_unavailable", "connection refused")
	require.NoError(t, err)

	assert.Equal(t, core.StateError, failed.State)
	assert.Empty(t, failed.Summary)
	assert.Equal(t, "service_unavailable", failed.LastErrorKind)
	assert.Equal(t, "connection refused", failed.LastErrorMessage)
}

func TestTerminalWrites_Idempotent(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	t.Run("repeated fail", func(t *testing.T) {
		added, err := repo.AddItem(ctx, pendingItem("fails twice"))
		require.NoError(t, err)

		first, err := repo.FailItem(ctx, added.Id, "service_error", "status 500")
		require.NoError(t, err)

		second, err := repo.FailItem(ctx, added.Id, "service_error", "status 500")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("repeated complete", func(t *testing.T) {
		added, err := repo.AddItem(ctx, pendingItem("completes twice"))
		require.NoError(t, err)

		first, err := repo.CompleteItem(ctx, added.Id, "summary")
		require.NoError(t, err)

		second, err := repo.CompleteItem(ctx, added.Id, "summary")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestTransition_Conflicting(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	added, err := repo.AddItem(ctx, pendingItem("completed then failed"))
	require.NoError(t, err)

	_, err = repo.CompleteItem(ctx, added.Id, "summary")
	require.NoError(t, err)

	_, err = repo.FailItem(ctx, added.Id, "service_error", "late failure")
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	// Record unchanged
	got, err := repo.GetItem(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StateCompleted, got.State)
	assert.Equal(t, "summary", got.Summary)
}

func TestGetItem_NotFound(t *testing.T) {
	repo := setupItemRepository(t)

	_, err := repo.GetItem(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGetItems_SkipsMissing(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	a, err := repo.AddItem(ctx, pendingItem("item a"))
	require.NoError(t, err)
	b, err := repo.AddItem(ctx, pendingItem("item b"))
	require.NoError(t, err)

	items, err := repo.GetItems(ctx, a.Id, core.ID(99999), b.Id)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestGetItemsByState(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	p1, err := repo.AddItem(ctx, pendingItem("stays pending 1"))
	require.NoError(t, err)
	p2, err := repo.AddItem(ctx, pendingItem("stays pending 2"))
	require.NoError(t, err)
	done, err := repo.AddItem(ctx, pendingItem("gets completed"))
	require.NoError(t, err)
	_, err = repo.CompleteItem(ctx, done.Id, "summary")
	require.NoError(t, err)

	pending, err := repo.GetItemsByState(ctx, core.StatePending, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	// Oldest first
	assert.Equal(t, p1.Id, pending[0].Id)
	assert.Equal(t, p2.Id, pending[1].Id)

	completed, err := repo.GetItemsByState(ctx, core.StateCompleted, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.Id, completed[0].Id)
}

func TestGetItemsByState_OlderThan(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	old, err := repo.AddItem(ctx, pendingItem("created before cutoff"))
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	cutoff := time.Now().UTC()
	time.Sleep(2 * time.Millisecond)

	_, err = repo.AddItem(ctx, pendingItem("created after cutoff"))
	require.NoError(t, err)

	stale, err := repo.GetItemsByState(ctx, core.StatePending, cutoff, 0)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, old.Id, stale[0].Id)
}

func TestGetItemsByState_Limit(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.AddItem(ctx, pendingItem("pending item for limit test"))
		require.NoError(t, err)
	}

	items, err := repo.GetItemsByState(ctx, core.StatePending, time.Time{}, 3)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestGetItemsByState_IndexFollowsTransition(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	added, err := repo.AddItem(ctx, pendingItem("moves through index"))
	require.NoError(t, err)

	_, err = repo.FailItem(ctx, added.Id, "malformed_stream", "bad chunk")
	require.NoError(t, err)

	pending, err := repo.GetItemsByState(ctx, core.StatePending, time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	failed, err := repo.GetItemsByState(ctx, core.StateError, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, added.Id, failed[0].Id)
}

func TestGetRecentItems(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	var ids []core.ID
	for i := 0; i < 4; i++ {
		item, err := repo.AddItem(ctx, pendingItem("recent item"))
		require.NoError(t, err)
		ids = append(ids, item.Id)
		time.Sleep(time.Millisecond)
	}

	recent, err := repo.GetRecentItems(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first
	assert.Equal(t, ids[3], recent[0].Id)
	assert.Equal(t, ids[2], recent[1].Id)
}

func TestDeleteItems(t *testing.T) {
	repo := setupItemRepository(t)
	ctx := context.Background()

	added, err := repo.AddItem(ctx, pendingItem("to be deleted"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteItems(ctx, added.Id))

	_, err = repo.GetItem(ctx, added.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	pending, err := repo.GetItemsByState(ctx, core.StatePending, time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	err = repo.DeleteItems(ctx, added.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

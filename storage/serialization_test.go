package storage

import (
	"testing"
	"time"

	"github.com/poiesic/summarit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		item core.Item
	}{
		{
			name: "pending file item",
			item: core.Item{
				Id:           42,
				Source:       core.SourceKindFile,
				OriginalName: "notes.txt",
				Format:       core.FormatTXT,
				RawText:      "raw text content",
				State:        core.StatePending,
				ContentHash:  core.HashContent("raw text content"),
				CreatedAt:    now,
				UpdatedAt:    now,
			},
		},
		{
			name: "completed item with summary",
			item: core.Item{
				Id:           7,
				Source:       core.SourceKindText,
				OriginalName: "pasted note",
				RawText:      "a longer body of pasted text",
				Summary:      "a summary",
				State:        core.StateCompleted,
				ContentHash:  core.HashContent("a longer body of pasted text"),
				CreatedAt:    now.Add(-time.Hour),
				UpdatedAt:    now,
			},
		},
		{
			name: "error item with cause",
			item: core.Item{
				Id:               9,
				Source:           core.SourceKindFile,
				OriginalName:     "report.pdf",
				Format:           core.FormatPDF,
				RawText:          "extracted pdf text",
				State:            core.StateError,
				LastErrorKind:    "service_unavailable",
				LastErrorMessage: "connection refused",
				CreatedAt:        now,
				UpdatedAt:        now,
			},
		},
		{
			name: "unicode content",
			item: core.Item{
				Id:        1,
				Source:    core.SourceKindText,
				RawText:   "héllo wörld é世界",
				State:     core.StatePending,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalItem(&tt.item)
			require.NotEmpty(t, data)
			require.Len(t, data, ItemMUS.Size(tt.item))

			got, err := UnmarshalItem(data)
			require.NoError(t, err)
			assert.Equal(t, tt.item, *got)
		})
	}
}

func TestMarshalUnmarshalID(t *testing.T) {
	for _, id := range []core.ID{0, 1, 255, 1 << 20, 1<<63 - 1} {
		data := MarshalID(id)
		got, err := UnmarshalID(data)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestUnmarshalItem_Truncated(t *testing.T) {
	item := core.Item{
		Id:        3,
		Source:    core.SourceKindText,
		RawText:   "content",
		State:     core.StatePending,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	data := MarshalItem(&item)

	_, err := UnmarshalItem(data[:len(data)/2])
	assert.Error(t, err)
}

func TestUnmarshalID_Empty(t *testing.T) {
	_, err := UnmarshalID(nil)
	assert.Error(t, err)
}

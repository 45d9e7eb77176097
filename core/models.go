package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for ingested items.
// It is assigned from a database sequence at creation time.
type ID uint64

// ContentHash is a 64-bit fingerprint of an item's raw text.
// It identifies duplicate content for observability; the pipeline does not
// deduplicate on it.
type ContentHash uint64

// HashContent computes a deterministic fingerprint of text content using
// BLAKE2b. Identical content always produces the same hash.
func HashContent(text string) ContentHash {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ContentHash(binary.LittleEndian.Uint64(sum))
}

// SourceKind identifies how an item's content entered the pipeline.
type SourceKind int

const (
	// SourceKindFile represents content extracted from an uploaded file.
	SourceKindFile SourceKind = iota + 1
	// SourceKindText represents content pasted directly as plain text.
	SourceKindText
)

// String returns the lowercase name of the source kind.
func (k SourceKind) String() string {
	switch k {
	case SourceKindFile:
		return "file"
	case SourceKindText:
		return "text"
	default:
		return "unknown"
	}
}

// ItemState is the lifecycle state of an ingested item.
//
// The state machine is monotonic and one-directional:
//
//	StatePending -> StateCompleted
//	StatePending -> StateError
//
// An item never re-enters StatePending after leaving it.
type ItemState int

const (
	// StatePending means raw text is persisted but no summary exists yet.
	StatePending ItemState = iota + 1
	// StateCompleted means summarization succeeded and a summary is stored.
	StateCompleted
	// StateError means summarization failed after the item was created.
	StateError
)

// IsTerminal reports whether the state is a terminal lifecycle state.
func (s ItemState) IsTerminal() bool {
	return s == StateCompleted || s == StateError
}

// CanTransitionTo reports whether a transition from s to next is allowed.
// Re-applying the same terminal state is allowed so terminal writes can be
// retried idempotently.
func (s ItemState) CanTransitionTo(next ItemState) bool {
	switch s {
	case StatePending:
		return next == StateCompleted || next == StateError
	case StateCompleted, StateError:
		return next == s
	default:
		return false
	}
}

// String returns the lowercase name of the state.
func (s ItemState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Item is the unit of work tracked through the ingestion pipeline and the
// record persisted in storage.
//
// RawText is set once at creation and never mutated. Summary is non-empty
// if and only if State is StateCompleted. LastErrorKind and LastErrorMessage
// are set only on the transition to StateError.
type Item struct {
	Id               ID
	Source           SourceKind
	OriginalName     string // Filename or user-assigned label; may be empty
	Format           Format // FormatNone for pasted text
	RawText          string
	Summary          string
	State            ItemState
	ContentHash      ContentHash
	LastErrorKind    string
	LastErrorMessage string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

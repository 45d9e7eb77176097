package core

import (
	"testing"
)

func TestHashContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same hash",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "This is a much longer piece of content that should still hash consistently",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h1 := HashContent(tt.content)
			h2 := HashContent(tt.content)

			if h1 != h2 {
				t.Errorf("HashContent() produced different hashes for same content: %d vs %d", h1, h2)
			}
		})
	}
}

func TestHashContent_Different(t *testing.T) {
	h1 := HashContent("content1")
	h2 := HashContent("content2")

	if h1 == h2 {
		t.Errorf("HashContent() produced same hash for different content")
	}
}

func TestItemState_IsTerminal(t *testing.T) {
	tests := []struct {
		state ItemState
		want  bool
	}{
		{StatePending, false},
		{StateCompleted, true},
		{StateError, true},
		{ItemState(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from ItemState
		to   ItemState
		want bool
	}{
		{"pending to completed", StatePending, StateCompleted, true},
		{"pending to error", StatePending, StateError, true},
		{"pending to pending", StatePending, StatePending, false},
		{"completed to completed is idempotent", StateCompleted, StateCompleted, true},
		{"error to error is idempotent", StateError, StateError, true},
		{"completed to error", StateCompleted, StateError, false},
		{"error to completed", StateError, StateCompleted, false},
		{"completed back to pending", StateCompleted, StatePending, false},
		{"error back to pending", StateError, StatePending, false},
		{"invalid state", ItemState(99), StateCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemState_String(t *testing.T) {
	tests := []struct {
		state ItemState
		want  string
	}{
		{StatePending, "pending"},
		{StateCompleted, "completed"},
		{StateError, "error"},
		{ItemState(42), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestSourceKind_String(t *testing.T) {
	if SourceKindFile.String() != "file" {
		t.Errorf("SourceKindFile.String() = %q", SourceKindFile.String())
	}
	if SourceKindText.String() != "text" {
		t.Errorf("SourceKindText.String() = %q", SourceKindText.String())
	}
}

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


package core

import "fmt"

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - RawText must not be empty
//   - Source must be valid (File or Text)
//   - State must be valid
//   - Summary must be set exactly when State is StateCompleted
//   - File items must carry a format from the allow-list; text items must not
//
// NOT validated:
//   - ID (0 is valid before the database sequence assigns one)
//   - OriginalName (may be empty)
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if item.RawText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyRawText)
	}

	if err := ValidateSourceKind(item.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	if err := ValidateItemState(item.State); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	if item.Summary != "" && item.State != StateCompleted {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrSummaryStateMismatch)
	}

	switch item.Source {
	case SourceKindFile:
		if item.Format == FormatNone {
			return fmt.Errorf("%w: %w: file item without format", ErrInvalidItem, ErrUnknownFormat)
		}
	case SourceKindText:
		if item.Format != FormatNone {
			return fmt.Errorf("%w: text item with format %q", ErrInvalidItem, item.Format)
		}
	}

	return nil
}

// ValidateSourceKind validates that a SourceKind has a valid value.
func ValidateSourceKind(kind SourceKind) error {
	switch kind {
	case SourceKindFile, SourceKindText:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidSourceKind, kind)
	}
}

// ValidateItemState validates that an ItemState has a valid value.
func ValidateItemState(state ItemState) error {
	switch state {
	case StatePending, StateCompleted, StateError:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidItemState, state)
	}
}

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

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptyRawText indicates the RawText field is empty.
	ErrEmptyRawText = errors.New("raw text cannot be empty")

	// ErrInvalidSourceKind indicates an invalid SourceKind value.
	ErrInvalidSourceKind = errors.New("invalid source kind")

	// ErrInvalidItemState indicates an invalid ItemState value.
	ErrInvalidItemState = errors.New("invalid item state")

	// ErrUnknownFormat indicates a format tag outside the allow-list.
	ErrUnknownFormat = errors.New("unknown format")

	// ErrSummaryStateMismatch indicates a summary present outside the
	// completed state. A completed item may carry an empty summary: the
	// model can legitimately return nothing for thin input.
	ErrSummaryStateMismatch = errors.New("summary requires completed state")
)

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


package ingestion

import "errors"

var (
	// ErrNilRepository is returned when a Pipeline is created without a repository.
	ErrNilRepository = errors.New("repository is nil")

	// ErrNilExtractor is returned when a Pipeline is created without an extractor.
	ErrNilExtractor = errors.New("extractor is nil")

	// ErrNilSummarizer is returned when a Pipeline is created without a summarizer.
	ErrNilSummarizer = errors.New("summarizer is nil")

	// ErrUnsupportedFormat is returned when the file's extension maps to no
	// accepted format. Nothing is persisted.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrPayloadTooLarge is returned when the uploaded file exceeds the
	// configured size limit. Nothing is persisted.
	ErrPayloadTooLarge = errors.New("payload exceeds size limit")

	// ErrEmptyInput is returned when the file bytes or pasted text are
	// empty. Nothing is persisted.
	ErrEmptyInput = errors.New("input is empty")

	// ErrTextTooShort is returned when pasted text falls under the minimum
	// length worth summarizing. Nothing is persisted.
	ErrTextTooShort = errors.New("text is too short to summarize")

	// ErrSummarizationFailed wraps a model-call failure after the item was
	// persisted. The item is left in StateError; the wrapped cause carries
	// the service error kind.
	ErrSummarizationFailed = errors.New("summarization failed")
)

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


package ai

import (
	"errors"
	"fmt"
)

// Failure kinds shared by all Summarizer implementations.
var (
	// ErrServiceUnavailable indicates the service could not be reached:
	// connection refused, timeout, or a network drop mid-stream.
	ErrServiceUnavailable = errors.New("language model service unavailable")

	// ErrService indicates the service answered with a non-2xx status.
	// Returned wrapped inside *ServiceError, which carries the status.
	ErrService = errors.New("language model service error")

	// ErrMalformedStreamChunk indicates a stream line that was not valid
	// JSON. The whole call fails because the aggregated answer would be
	// incomplete.
	ErrMalformedStreamChunk = errors.New("malformed stream chunk")
)

// ServiceError is a non-2xx response from the language model service.
type ServiceError struct {
	Status int
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("language model service error: status %d", e.Status)
}

// Unwrap makes errors.Is(err, ErrService) hold for ServiceError values.
func (e *ServiceError) Unwrap() error {
	return ErrService
}

// ErrorKind maps a summarization error onto a short stable tag, suitable
// for persisting on an item's error transition.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, ErrService):
		return "service_error"
	case errors.Is(err, ErrMalformedStreamChunk):
		return "malformed_stream"
	default:
		return "model_error"
	}
}

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


package ollama

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/poiesic/summarit/ai"
)

// Scanner buffer bounds. Single stream lines stay small in practice, but a
// model can emit a long token run in one fragment.
const (
	initialLineBuffer = 64 * 1024
	maxLineBuffer     = 1024 * 1024
)

// Summarizer implements ai.Summarizer against Ollama's generate endpoint.
//
// The endpoint answers with a stream of newline-delimited JSON objects, each
// optionally carrying a partial text token under the configured response
// field. The stream terminates on connection close; no explicit done
// sentinel is required.
type Summarizer struct {
	host          string
	model         string
	responseField string
	client        *http.Client
	logger        *slog.Logger
}

// generateRequest is the JSON body of a generate call.
type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// newSummarizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newSummarizer(config *ai.Config) (*Summarizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Summarizer{
		host:          config.Host,
		model:         config.Model,
		responseField: config.ResponseField,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		logger: slog.Default().With("component", "ollama-summarizer"),
	}, nil
}

// NewSummarizer creates a new streaming summarizer using the provided
// configuration.
//
// Returns ai.Summarizer interface to enforce abstraction.
func NewSummarizer(config *ai.Config) (ai.Summarizer, error) {
	return newSummarizer(config)
}

// Summarize submits the prompt and aggregates the streamed response into a
// single string.
//
// Blank lines are skipped. Every non-blank line must parse as an independent
// JSON object; a line that doesn't fails the whole call with
// ai.ErrMalformedStreamChunk, because silently dropping it would hand back an
// incomplete answer. Lines without the response field are non-content
// control events and are ignored. On clean stream close the accumulated
// text is returned trimmed of outer whitespace; an empty result is valid.
//
// No retries happen here. Retry policy belongs to the caller.
func (s *Summarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  s.model,
		Prompt: prompt,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.host+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("generate request failed", "err", err)
		return "", fmt.Errorf("%w: %v", ai.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		io.CopyN(io.Discard, resp.Body, 512)
		s.logger.Error("generate request rejected", "status", resp.StatusCode)
		return "", &ai.ServiceError{Status: resp.StatusCode}
	}

	result, err := s.aggregate(resp.Body)
	if err != nil {
		return "", err
	}

	s.logger.Debug("aggregated streamed response", "length", len(result))
	return result, nil
}

// aggregate reads the response stream line by line and concatenates the
// token fields in arrival order.
func (s *Summarizer) aggregate(body io.Reader) (string, error) {
	var acc strings.Builder

	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, initialLineBuffer), maxLineBuffer)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var event map[string]json.RawMessage
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			s.logger.Error("stream chunk is not valid JSON", "err", err)
			return "", fmt.Errorf("%w: %v", ai.ErrMalformedStreamChunk, err)
		}

		raw, ok := event[s.responseField]
		if !ok {
			// Control event without content
			continue
		}

		var token string
		if err := json.Unmarshal(raw, &token); err != nil {
			s.logger.Error("stream token field is not a string", "err", err)
			return "", fmt.Errorf("%w: %v", ai.ErrMalformedStreamChunk, err)
		}
		acc.WriteString(token)
	}

	if err := scanner.Err(); err != nil {
		// Network drop mid-stream
		s.logger.Error("stream read failed", "err", err)
		return "", fmt.Errorf("%w: %v", ai.ErrServiceUnavailable, err)
	}

	return strings.TrimSpace(acc.String()), nil
}

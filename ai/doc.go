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


// Package ai provides abstractions for the language model services used in
// Summarit.
//
// The package defines the Summarizer interface the ingestion pipeline calls,
// the AIProvider aggregate for initialization and lifecycle management, the
// shared failure taxonomy (ErrServiceUnavailable, ErrService,
// ErrMalformedStreamChunk), and a functional-options Config.
//
// # Implementation Packages
//
//   - ai/ollama: streaming client for Ollama's newline-delimited JSON
//     generate endpoint; aggregates the stream into a single string
//   - ai/openai: client for OpenAI-compatible chat APIs via langchaingo
//   - ai/mock: test doubles for unit testing without external services
//
// # Constructor Return Type Pattern
//
// Production constructors (ollama.NewProvider, openai.NewProvider) return
// interface types to enforce abstraction. Test utility constructors
// (mock.NewMockSummarizer) return concrete types so tests can inject
// behavior and assert on call counts.
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithModel("llama3.2"))
//	provider, err := ollama.NewProvider(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	summary, err := provider.Summarizer().Summarize(ctx, prompt)
package ai

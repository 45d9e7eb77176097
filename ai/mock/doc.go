// Package mock provides test doubles for the ai package interfaces.
//
// MockSummarizer supports behavior injection through its SummarizeFunc
// field and records call counts and prompts for assertions. MockProvider
// aggregates a MockSummarizer behind the ai.AIProvider interface.
package mock

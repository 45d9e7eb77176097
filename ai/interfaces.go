package ai

import "context"

// Summarizer produces a summary for a fully rendered prompt.
// Implementations must be thread-safe for concurrent use.
type Summarizer interface {
	// Summarize submits the prompt to a text-generation service and returns
	// the fully assembled response text, trimmed of outer whitespace.
	// An empty result after a clean response is valid and returns ("", nil);
	// failures return one of the package error kinds (ErrServiceUnavailable,
	// ErrService via *ServiceError, ErrMalformedStreamChunk).
	// Implementations perform no retries; retry policy belongs to callers.
	Summarize(ctx context.Context, prompt string) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages its Summarizer
// instance, ensuring configuration and resources are shared appropriately.
type AIProvider interface {
	// Summarizer returns the summarization service.
	// The returned Summarizer is safe for concurrent use.
	Summarizer() Summarizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}

package extract

import (
	"context"
	"fmt"
	"unicode/utf8"
)

// plainTextStrategy passes already-plain text through unchanged.
type plainTextStrategy struct{}

func (s *plainTextStrategy) Extract(ctx context.Context, data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", ErrExtractionFailed)
	}
	return string(data), nil
}

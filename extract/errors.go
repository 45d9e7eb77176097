package extract

import "errors"

var (
	// ErrExtractionFailed indicates content that could not be parsed into
	// text: a corrupt file, an unsupported internal structure, or input
	// that contains no text at all.
	ErrExtractionFailed = errors.New("extraction failed")
)

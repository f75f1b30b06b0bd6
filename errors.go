package makechap

import (
	"errors"
	"fmt"
)

// Sentinel errors for renumbering operations.
var (
	// ErrMalformedHeading is wrapped by every heading validation failure.
	ErrMalformedHeading = errors.New("ill-formed heading")

	// Heading text validation errors.
	ErrMissingHeadingText   = errors.New("no heading text")
	ErrAmbiguousHeadingText = errors.New("two heading texts, only one should be specified")

	// Document structure errors.
	ErrUnterminatedIndex = errors.New("index block is not terminated")

	// Input validation errors.
	ErrInvalidChapterNumber = errors.New("invalid chapter number")
	ErrEmptyBase            = errors.New("anchor base cannot be empty")
	ErrInvalidIndexClass    = errors.New("invalid index class")
)

// HeadingError reports a heading line that could not be renumbered.
// It matches both ErrMalformedHeading and the specific cause with errors.Is.
type HeadingError struct {
	Line int    // 1-based line number in the source document
	Text string // offending line
	Err  error  // ErrMissingHeadingText or ErrAmbiguousHeadingText
}

func (e *HeadingError) Error() string {
	return fmt.Sprintf("line %d: %v in line:\n%s", e.Line, e.Err, e.Text)
}

// Unwrap exposes both the generic and the specific cause.
func (e *HeadingError) Unwrap() []error {
	return []error{ErrMalformedHeading, e.Err}
}

package beatmap

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel all parse failures wrap, so callers can use
// errors.Is without caring about the concrete failure.
var ErrParse = errors.New("beatmap parse failed")

// ParseError pinpoints the offending section and line of a malformed
// beatmap. Fatal for the calculation, never recoverable.
type ParseError struct {
	Section string
	Line    int
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Section == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}

	return fmt.Sprintf("section [%s] line %d: %s", e.Section, e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

func newParseError(section string, line int, format string, args ...any) *ParseError {
	return &ParseError{
		Section: section,
		Line:    line,
		Reason:  fmt.Sprintf(format, args...),
	}
}

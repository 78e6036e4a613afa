package worldline

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by date construction and parsing.
var (
	// ErrInvalidYear is returned when a year is outside -9999..9999.
	ErrInvalidYear = errors.New("invalid year")

	// ErrInvalidMonth is returned when a month is outside 0-12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidDay is returned when a day does not fit its month.
	ErrInvalidDay = errors.New("invalid day")

	// ErrDateFormat is returned when text does not match the date grammar.
	ErrDateFormat = errors.New("invalid date format")
)

// LineError reports an entry of a worldline file that could not be parsed.
type LineError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// FileError reports a failed read or write of a worldline file.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s worldline: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s worldline %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

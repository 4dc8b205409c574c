package source

import (
	"fmt"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

// LineError describes a token that is not a valid date key.
type LineError struct {
	Path  string
	Line  int
	Token string
	Err   error
}

func (e LineError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("%s:%d: %q: %v", e.Path, e.Line, e.Token, e.Err)
}

func (e LineError) Unwrap() error { return e.Err }

// ParseResult holds the output of parsing a single date list.
type ParseResult struct {
	Keys   []caldate.Key // canonical, in file order, duplicates removed
	Errors []LineError
	Err    error // I/O failure; Keys holds whatever was read before it
}

// DiscoveredFile is a date list found during directory scanning.
type DiscoveredFile struct {
	Path string
	Name string // file name without extension
}

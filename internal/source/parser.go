// Package source reads lists of exclusion dates from text files.
//
// A list holds YYYYMMDD keys separated by newlines, commas or whitespace.
// Everything after a '#' on a line is a comment.
package source

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/theirongolddev/swipeplan/internal/caldate"
)

// Parse reads a date list from r. Malformed tokens are reported per line
// and skipped; they never stop the scan.
func Parse(r io.Reader) ParseResult {
	var res ParseResult
	seen := make(map[caldate.Key]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		for _, tok := range splitTokens(line) {
			d, err := caldate.Parse(caldate.Key(tok))
			if err != nil {
				res.Errors = append(res.Errors, LineError{Line: lineNo, Token: tok, Err: err})
				continue
			}
			k := d.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			res.Keys = append(res.Keys, k)
		}
	}
	res.Err = scanner.Err()
	return res
}

// ParseFile opens path and parses it as a date list. Line errors carry path.
func ParseFile(path string) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	res := Parse(f)
	for i := range res.Errors {
		res.Errors[i].Path = path
	}
	return res
}

func splitTokens(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t' || r == '\r'
	})
}

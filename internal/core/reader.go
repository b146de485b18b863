package core

// reader.go prepares flat files for line-oriented parsing.
//
// Files edited on Windows often start with a UTF-8 BOM and may carry stray
// non-UTF-8 bytes. Both the catalog CSV and the credentials file are read
// through newTextReader, which strips the BOM and replaces invalid sequences
// with U+FFFD, then split into lines by scanLines.

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineLength bounds a single record line.
const maxLineLength = 1 << 20

// newTextReader wraps r with BOM stripping and UTF-8 sanitisation.
func newTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
}

// scanLines calls fn for every line of r with its 1-based number. Trailing
// carriage returns are dropped. Scanning stops at the first error from fn.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(newTextReader(r))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := fn(lineNo, strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

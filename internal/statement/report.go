package statement

import (
	"bufio"
	"fmt"
	"io"
)

// Warning records a per-record failure that did not abort the batch. Warnings
// accumulate alongside successful output; only document-level failures abort
// a parse.
type Warning struct {
	Err    error
	Detail string
	Line   int // 1-based source line
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %v: %s", w.Line, w.Err, w.Detail)
}

// readLines reads an input document into ordered lines, preserving tab
// characters where the source table used them.
func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statement text: %w", err)
	}
	return lines, nil
}

// truncate shortens long reconstructed blocks for warning messages.
func truncate(s string) string {
	const maxLen = 80
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

package csvutil

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadLines reads a text file and returns its lines in order.
// Line terminators (LF or CRLF) are removed. Empty lines are kept so that
// callers can map each line back to its physical position in the file.
// Lines may be of any length.
func ReadLines(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := bufio.NewReader(file)

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if err != nil {
			return lines, nil
		}
	}
}

// IsBlank reports whether a line carries no content at all.
func IsBlank(line string) bool {
	return strings.TrimSuffix(line, "\r") == ""
}

// SplitIdentifiers splits a comma-separated line into its fields.
// Surrounding whitespace is trimmed and empty fragments are dropped.
// Order and duplicates are preserved.
func SplitIdentifiers(line string) []string {
	parts := strings.Split(strings.TrimSuffix(line, "\r"), ",")

	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, part)
	}
	return ids
}

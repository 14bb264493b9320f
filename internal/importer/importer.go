// Package importer turns dropped-in text files into record descriptions,
// one per non-blank line.
package importer

import (
	"fmt"
	"os"
	"strings"
)

// SplitLines splits newline-delimited text into trimmed, non-blank lines.
// Text after the final line with no trailing separator is still included.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// ReadFile loads the file at path and returns its non-blank lines.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file %s: %w", path, err)
	}
	return SplitLines(string(data)), nil
}

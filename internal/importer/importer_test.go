package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"only whitespace", "  \n\t\n   \n", nil},
		{"simple", "a\nb\nc\n", []string{"a", "b", "c"}},
		{"no trailing newline", "a\nb\nc", []string{"a", "b", "c"}},
		{"blank lines dropped", "a\n\n\nb\n", []string{"a", "b"}},
		{"surrounding whitespace trimmed", "  buy milk \n\twalk dog\t\n", []string{"buy milk", "walk dog"}},
		{"windows line endings", "a\r\nb\r\n", []string{"a", "b"}},
		{"single line no newline", "just one", []string{"just one"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitLines(tc.in))
		})
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\n\ntwo\nthree"), 0o644))

	lines, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

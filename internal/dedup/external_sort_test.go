package dedup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		input     string
		want      string
	}{
		{"empty", 3, "", ""},
		{"single chunk", 10, "b\na\nb\nc\n", "a\nb\nc\n"},
		{"duplicates across chunks", 2, "c\na\na\nc\nb\na\n", "a\nb\nc\n"},
		{"blank lines dropped", 2, "b\n\na\n\n", "a\nb\n"},
		{"no trailing newline", 1, "z\ny", "y\nz\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			sorter := NewExternalSorter(tt.chunkSize, t.TempDir())
			_, err := sorter.Sort(context.Background(), false, strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestSortStats(t *testing.T) {
	var in strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&in, "(\"name %02d\", \"other\")\n", i%25)
	}

	dir := t.TempDir()
	var out bytes.Buffer
	stats, err := NewExternalSorter(10, dir).Sort(context.Background(), false, strings.NewReader(in.String()), &out)
	require.NoError(t, err)

	assert.Equal(t, 100, stats.LinesRead)
	assert.Equal(t, 25, stats.LinesWritten)
	assert.Equal(t, 10, stats.Chunks)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 25)
	assert.IsIncreasing(t, lines)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "chunk files are removed")
}

func TestSortFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.txt")
	out := filepath.Join(dir, "dedup.txt")
	require.NoError(t, os.WriteFile(in, []byte("b\na\nb\n"), 0o644))

	stats, err := NewExternalSorter(0, dir).SortFile(context.Background(), false, in, out)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.LinesWritten)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(got))

	_, err = NewExternalSorter(0, dir).SortFile(context.Background(), false, filepath.Join(dir, "missing.txt"), out)
	assert.Error(t, err)
}

func TestSortCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExternalSorter(1, t.TempDir()).Sort(ctx, false, strings.NewReader("a\nb\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}

// Package dedup removes duplicate lines from streams too large for memory:
// lines are sorted and deduplicated in chunks spilled to temporary files,
// then the chunks are merged.
package dedup

import (
	"bufio"
	"container/heap"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/compare-names/internal/debug"
)

// DefaultChunkSize is the number of lines held in memory per chunk
const DefaultChunkSize = 10_000

const maxLineSize = 1 << 20

// Stats tracks one external sort
type Stats struct {
	LinesRead      int
	LinesWritten   int
	Chunks         int
	ProcessingTime time.Duration
}

// ExternalSorter sorts and deduplicates lines with bounded memory
type ExternalSorter struct {
	ChunkSize int
	TempDir   string // defaults to os.TempDir()
}

// NewExternalSorter creates a sorter; a chunkSize below 1 uses DefaultChunkSize
func NewExternalSorter(chunkSize int, tempDir string) *ExternalSorter {
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}
	return &ExternalSorter{ChunkSize: chunkSize, TempDir: tempDir}
}

// Sort writes the distinct non-empty lines of r to w in byte order
func (s *ExternalSorter) Sort(ctx context.Context, localDebug bool, r io.Reader, w io.Writer) (*Stats, error) {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)

	startTime := time.Now()
	stats := &Stats{}

	dir, err := os.MkdirTemp(s.TempDir, "dedup-"+ulid.Make().String()+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk directory: %w", err)
	}
	defer os.RemoveAll(dir)

	chunks, err := s.split(ctx, r, dir, stats)
	if err != nil {
		return stats, err
	}
	stats.Chunks = len(chunks)
	debug.DebugOutput(localDebug, "Split %d lines into %d chunks", stats.LinesRead, stats.Chunks)

	if err := merge(ctx, chunks, w, stats); err != nil {
		return stats, err
	}

	stats.ProcessingTime = time.Since(startTime)
	debug.DebugOutput(localDebug, "Dedup wrote %d of %d lines in %v", stats.LinesWritten, stats.LinesRead, stats.ProcessingTime)
	return stats, nil
}

// SortFile deduplicates the file at inPath into outPath
func (s *ExternalSorter) SortFile(ctx context.Context, localDebug bool, inPath, outPath string) (*Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	stats, err := s.Sort(ctx, localDebug, in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to close %s: %w", outPath, cerr)
	}
	return stats, err
}

func (s *ExternalSorter) split(ctx context.Context, r io.Reader, dir string, stats *Stats) ([]string, error) {
	chunkSize := s.ChunkSize
	if chunkSize < 1 {
		chunkSize = DefaultChunkSize
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var chunks []string
	lines := make([]string, 0, chunkSize)

	spill := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, fmt.Sprintf("chunk_%06d.txt", len(chunks)))
		if err := writeChunk(path, lines); err != nil {
			return err
		}
		chunks = append(chunks, path)
		lines = lines[:0]
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		stats.LinesRead++
		lines = append(lines, line)
		if len(lines) == chunkSize {
			if err := spill(); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if len(lines) > 0 {
		if err := spill(); err != nil {
			return nil, err
		}
	}
	return chunks, nil
}

func writeChunk(path string, lines []string) error {
	sort.Strings(lines)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk: %w", err)
	}
	bw := bufio.NewWriter(f)
	for i, line := range lines {
		if i > 0 && line == lines[i-1] {
			continue
		}
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write chunk: %w", err)
	}
	return f.Close()
}

type cursor struct {
	line    string
	scanner *bufio.Scanner
}

// lineHeap orders chunk cursors by their current line
type lineHeap []*cursor

func (h lineHeap) Len() int            { return len(h) }
func (h lineHeap) Less(i, j int) bool  { return h[i].line < h[j].line }
func (h lineHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *lineHeap) Push(x interface{}) { *h = append(*h, x.(*cursor)) }
func (h *lineHeap) Pop() interface{} {
	old := *h
	c := old[len(old)-1]
	*h = old[:len(old)-1]
	return c
}

func merge(ctx context.Context, chunks []string, w io.Writer, stats *Stats) error {
	h := make(lineHeap, 0, len(chunks))
	for _, path := range chunks {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open chunk: %w", err)
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), maxLineSize)
		if sc.Scan() {
			h = append(h, &cursor{line: sc.Text(), scanner: sc})
		} else if err := sc.Err(); err != nil {
			return fmt.Errorf("failed to read chunk: %w", err)
		}
	}
	heap.Init(&h)

	out := bufio.NewWriter(w)
	last := ""
	written := false
	for h.Len() > 0 {
		if stats.LinesWritten%DefaultChunkSize == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		c := h[0]
		if !written || c.line != last {
			if _, err := out.WriteString(c.line + "\n"); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			last = c.line
			written = true
			stats.LinesWritten++
		}

		if c.scanner.Scan() {
			c.line = c.scanner.Text()
			heap.Fix(&h, 0)
		} else {
			if err := c.scanner.Err(); err != nil {
				return fmt.Errorf("failed to read chunk: %w", err)
			}
			heap.Pop(&h)
		}
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

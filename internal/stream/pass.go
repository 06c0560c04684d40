package stream

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/compare-names/internal/debug"
)

// Policy decides what happens to a malformed candidate line
type Policy int

const (
	// PolicyAbort stops the pass at the first malformed line
	PolicyAbort Policy = iota
	// PolicySkip counts and logs malformed lines and carries on
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyAbort:
		return "abort"
	case PolicySkip:
		return "skip"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ScoreFunc scores a pair of cleaned names
type ScoreFunc func(nameA, nameB string) float64

// DefaultBatchSize is the number of lines scored concurrently
const DefaultBatchSize = 4096

const maxLineSize = 1 << 20

// Stats tracks a scoring pass
type Stats struct {
	LinesRead      int
	Emitted        int
	BelowThreshold int
	Skipped        int
	AverageScore   float64
	ProcessingTime time.Duration
}

// ScoringPass reads candidate lines, scores them and writes the pairs that
// reach the threshold
type ScoringPass struct {
	Score     ScoreFunc
	Threshold float64
	Policy    Policy
	Workers   int
	BatchSize int
}

type scoredLine struct {
	pair  ScoredPair
	err   error
	empty bool
}

// Run scores every candidate line of r and writes scored lines to w in input
// order
func (sp *ScoringPass) Run(ctx context.Context, localDebug bool, r io.Reader, w io.Writer) (*Stats, error) {
	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)

	startTime := time.Now()
	stats := &Stats{}

	workers := sp.Workers
	if workers < 1 {
		workers = 1
	}
	batchSize := sp.BatchSize
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	out := bufio.NewWriter(w)

	var totalScore float64
	lineNo := 0
	batch := make([]string, 0, batchSize)

	flush := func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		results := sp.scoreBatch(batch, workers)
		for i, res := range results {
			n := lineNo - len(batch) + i + 1
			if res.empty {
				continue
			}
			stats.LinesRead++
			if res.err != nil {
				if sp.Policy == PolicyAbort {
					return fmt.Errorf("line %d: %w", n, res.err)
				}
				stats.Skipped++
				debug.Logger().Warn("skipping malformed candidate line", zap.Int("line", n), zap.Error(res.err))
				continue
			}
			if res.pair.Score < sp.Threshold {
				stats.BelowThreshold++
				continue
			}
			totalScore += res.pair.Score
			stats.Emitted++
			if _, err := out.WriteString(FormatScored(res.pair) + "\n"); err != nil {
				return fmt.Errorf("failed to write scored line: %w", err)
			}
		}
		debug.DebugOutput(localDebug, "Scored %d lines, emitted %d", stats.LinesRead, stats.Emitted)
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		lineNo++
		batch = append(batch, scanner.Text())
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read candidates: %w", err)
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return stats, err
		}
	}
	if err := out.Flush(); err != nil {
		return stats, fmt.Errorf("failed to flush scored lines: %w", err)
	}

	stats.ProcessingTime = time.Since(startTime)
	if stats.Emitted > 0 {
		stats.AverageScore = totalScore / float64(stats.Emitted)
	}

	debug.DebugOutput(localDebug, "Scoring pass complete:")
	debug.DebugOutput(localDebug, "  Lines read: %d", stats.LinesRead)
	debug.DebugOutput(localDebug, "  Emitted: %d", stats.Emitted)
	debug.DebugOutput(localDebug, "  Below threshold: %d", stats.BelowThreshold)
	debug.DebugOutput(localDebug, "  Skipped: %d", stats.Skipped)
	debug.DebugOutput(localDebug, "  Processing time: %v", stats.ProcessingTime)

	return stats, nil
}

func (sp *ScoringPass) scoreBatch(lines []string, workers int) []scoredLine {
	results := make([]scoredLine, len(lines))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if strings.TrimSpace(line) == "" {
				results[i].empty = true
				return nil
			}
			a, b, err := ParseCandidate(line)
			if err != nil {
				results[i].err = err
				return nil
			}
			results[i].pair = ScoredPair{NameA: a, NameB: b, Score: sp.Score(a, b)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Package pipeline runs a whole matching job: clean the names, build the
// word graph and pair index, hand the corpus to a comparator, deduplicate
// its candidates and optionally score them.
package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/compare-names/internal/comparator"
	"github.com/compare-names/internal/config"
	"github.com/compare-names/internal/debug"
	"github.com/compare-names/internal/dedup"
	"github.com/compare-names/internal/normalize"
	"github.com/compare-names/internal/pairindex"
	"github.com/compare-names/internal/stream"
	"github.com/compare-names/internal/wordgraph"
)

// Options configures a run
type Options struct {
	Settings *config.Settings

	// Comparator defaults to an External comparator when
	// Settings.ComparatorPath is set, the in-process one otherwise.
	Comparator comparator.Comparator

	// Score enables the scoring pass. Without it the deduplicated candidate
	// lines are the output.
	Score stream.ScoreFunc

	// OutputPath receives the final stream
	OutputPath string

	// KeepWorkDir leaves the payload and intermediate files on disk
	KeepWorkDir bool
}

// Result describes a finished run
type Result struct {
	RunID          string
	WorkDir        string
	Names          int
	Words          int
	PairKeys       int
	CandidatesPath string
	OutputPath     string
	Dedup          *dedup.Stats
	Scoring        *stream.Stats
	ProcessingTime time.Duration
}

// PrepareNames cleans and deduplicates raw names, then shuffles them when
// enabled. The shuffle is deterministic for a given seed.
func PrepareNames(raw []string, shuffle bool, seed int64) []string {
	names := normalize.CleanAll(raw)
	if shuffle {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	}
	return names
}

// BuildPayload derives the word graph and pair index of cleaned names
func BuildPayload(localDebug bool, names []string, workers int) *stream.Payload {
	graph := wordgraph.NewBuilder(workers).WithDebug(localDebug).Build(names)
	index := pairindex.Build(names)
	return &stream.Payload{
		AllNames:      names,
		WordToMatches: graph,
		PairToNames:   index,
	}
}

// Run executes the job over raw names
func Run(ctx context.Context, raw []string, opts Options) (*Result, error) {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	if opts.OutputPath == "" {
		return nil, fmt.Errorf("output path is required")
	}
	localDebug := settings.Debug

	debug.DebugHeader(localDebug)
	defer debug.DebugFooter(localDebug)

	startTime := time.Now()
	result := &Result{RunID: ulid.Make().String(), OutputPath: opts.OutputPath}
	log := debug.Logger().With(zap.String("run", result.RunID))

	workDir, err := os.MkdirTemp(settings.TempDir, "namematch-"+result.RunID+"-")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	result.WorkDir = workDir
	if !opts.KeepWorkDir {
		defer os.RemoveAll(workDir)
	}

	names := PrepareNames(raw, settings.Shuffle, settings.Seed)
	result.Names = len(names)
	log.Info("names prepared", zap.Int("raw", len(raw)), zap.Int("distinct", len(names)))

	payload := BuildPayload(localDebug, names, settings.Workers)
	result.Words = len(payload.WordToMatches)
	result.PairKeys = len(payload.PairToNames)
	log.Info("corpus built", zap.Int("words", result.Words), zap.Int("pair_keys", result.PairKeys))

	payloadPath := filepath.Join(workDir, "payload.json")
	if err := writePayloadFile(payloadPath, payload); err != nil {
		return nil, err
	}

	cmp := opts.Comparator
	if cmp == nil {
		cmp = NewComparator(settings)
	}
	rawPath := filepath.Join(workDir, "candidates_raw.txt")
	if err := cmp.Compare(ctx, payloadPath, rawPath); err != nil {
		return nil, fmt.Errorf("comparator failed: %w", err)
	}

	result.CandidatesPath = opts.OutputPath
	if opts.Score != nil {
		result.CandidatesPath = filepath.Join(workDir, "candidates.txt")
	}
	sorter := dedup.NewExternalSorter(settings.ChunkSize, workDir)
	result.Dedup, err = sorter.SortFile(ctx, localDebug, rawPath, result.CandidatesPath)
	if err != nil {
		return nil, fmt.Errorf("dedup failed: %w", err)
	}
	log.Info("candidates deduplicated", zap.Int("raw", result.Dedup.LinesRead), zap.Int("distinct", result.Dedup.LinesWritten))

	if opts.Score != nil {
		result.Scoring, err = scoreFile(ctx, localDebug, settings, opts.Score, result.CandidatesPath, opts.OutputPath)
		if err != nil {
			return nil, err
		}
		log.Info("candidates scored",
			zap.Int("emitted", result.Scoring.Emitted),
			zap.Int("below_threshold", result.Scoring.BelowThreshold),
			zap.Int("skipped", result.Scoring.Skipped))
	}

	result.ProcessingTime = time.Since(startTime)
	debug.DebugOutput(localDebug, "Run %s finished in %v", result.RunID, result.ProcessingTime)
	return result, nil
}

// NewComparator picks the comparator the settings ask for
func NewComparator(settings *config.Settings) comparator.Comparator {
	if settings.ComparatorPath != "" {
		return &comparator.External{Path: settings.ComparatorPath, Debug: settings.Debug}
	}
	return &comparator.InProcess{Workers: settings.Workers, Debug: settings.Debug}
}

// Policy maps the settings to a malformed line policy
func Policy(settings *config.Settings) stream.Policy {
	if settings.SkipMalformed {
		return stream.PolicySkip
	}
	return stream.PolicyAbort
}

func writePayloadFile(path string, payload *stream.Payload) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create payload file: %w", err)
	}
	if err := stream.WritePayload(f, payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close payload file: %w", err)
	}
	return nil
}

// ScoreFile runs the scoring pass from one file to another
func ScoreFile(ctx context.Context, settings *config.Settings, score stream.ScoreFunc, inPath, outPath string) (*stream.Stats, error) {
	return scoreFile(ctx, settings.Debug, settings, score, inPath, outPath)
}

func scoreFile(ctx context.Context, localDebug bool, settings *config.Settings, score stream.ScoreFunc, inPath, outPath string) (*stream.Stats, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open candidates: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create scored output: %w", err)
	}

	pass := &stream.ScoringPass{
		Score:     score,
		Threshold: settings.Threshold,
		Policy:    Policy(settings),
		Workers:   settings.Workers,
	}
	stats, err := pass.Run(ctx, localDebug, in, out)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return stats, fmt.Errorf("scoring failed: %w", err)
	}
	return stats, nil
}

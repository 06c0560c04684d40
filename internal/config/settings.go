package config

import (
	"fmt"
	"os"
	"runtime"
)

// Settings holds the knobs of a matching run
type Settings struct {
	// Workers bounds the goroutines used for vocabulary and scoring work.
	Workers int

	// Threshold is the minimum score a pair needs to reach the scored stream.
	Threshold float64

	// ComparatorPath points at an external comparator binary. Empty means
	// the in-process comparator is used.
	ComparatorPath string

	// Shuffle enables the seeded pre-shuffle of the name list.
	Shuffle bool
	Seed    int64

	// ChunkSize is the number of lines held in memory per dedup chunk.
	ChunkSize int

	// SkipMalformed turns unparsable stream lines into counted skips
	// instead of aborting the pass.
	SkipMalformed bool

	TempDir string
	Debug   bool
}

// DefaultSettings returns the defaults used when nothing is configured
func DefaultSettings() *Settings {
	return &Settings{
		Workers:   runtime.NumCPU(),
		Threshold: 0,
		Shuffle:   true,
		Seed:      1,
		ChunkSize: 10_000,
		TempDir:   os.TempDir(),
	}
}

// LoadSettings reads settings from the environment (after .env) on top of the defaults
func LoadSettings() (*Settings, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	s := DefaultSettings()
	s.Workers = GetEnvInt("NAMEMATCH_WORKERS", s.Workers)
	s.Threshold = GetEnvFloat("NAMEMATCH_THRESHOLD", s.Threshold)
	s.ComparatorPath = GetEnv("NAMEMATCH_COMPARATOR", s.ComparatorPath)
	s.Shuffle = GetEnvBool("NAMEMATCH_SHUFFLE", s.Shuffle)
	s.Seed = GetEnvInt64("NAMEMATCH_SEED", s.Seed)
	s.ChunkSize = GetEnvInt("NAMEMATCH_CHUNK_SIZE", s.ChunkSize)
	s.SkipMalformed = GetEnvBool("NAMEMATCH_SKIP_MALFORMED", s.SkipMalformed)
	s.TempDir = GetEnv("NAMEMATCH_TEMP_DIR", s.TempDir)
	s.Debug = GetEnvBool("NAMEMATCH_DEBUG", s.Debug)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate rejects settings a run cannot work with
func (s *Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", s.Workers)
	}
	if s.Threshold < 0 || s.Threshold > 100 {
		return fmt.Errorf("threshold must be within [0,100], got %v", s.Threshold)
	}
	if s.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be positive, got %d", s.ChunkSize)
	}
	return nil
}

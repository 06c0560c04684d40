package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compare-names/internal/comparator"
	"github.com/compare-names/internal/config"
	"github.com/compare-names/internal/scorer"
	"github.com/compare-names/internal/stream"
)

func testSettings(t *testing.T) *config.Settings {
	s := config.DefaultSettings()
	s.Workers = 2
	s.Shuffle = false
	s.ChunkSize = 2
	s.TempDir = t.TempDir()
	return s
}

var rawNames = []string{"John Smith", "Jon Smith", "J. Smith", "Mary Jones", "john  smith", ""}

func TestPrepareNames(t *testing.T) {
	assert.Equal(t, []string{"john smith", "jon smith", "j smith", "mary jones", "_"}, PrepareNames(rawNames, false, 1))

	first := PrepareNames(rawNames, true, 42)
	again := PrepareNames(rawNames, true, 42)
	assert.Equal(t, first, again, "same seed, same order")
	assert.ElementsMatch(t, PrepareNames(rawNames, false, 1), first)
}

func TestBuildPayload(t *testing.T) {
	names := PrepareNames(rawNames, false, 1)
	p := BuildPayload(false, names, 2)

	assert.Equal(t, names, p.AllNames)
	assert.Contains(t, p.WordToMatches["john"], "jon")
	assert.Contains(t, p.WordToMatches["j"], "john")
	assert.Equal(t, []string{"john smith"}, p.PairToNames["john_smith"])
}

func TestRunCandidatesOnly(t *testing.T) {
	settings := testSettings(t)
	out := filepath.Join(t.TempDir(), "candidates.txt")

	result, err := Run(context.Background(), rawNames, Options{Settings: settings, OutputPath: out})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `("j smith", "john smith")
("j smith", "jon smith")
("john smith", "jon smith")
`, string(got))

	assert.Equal(t, 5, result.Names)
	assert.Equal(t, 3, result.Dedup.LinesWritten)
	assert.Nil(t, result.Scoring)
	assert.NotEmpty(t, result.RunID)

	_, err = os.Stat(result.WorkDir)
	assert.True(t, os.IsNotExist(err), "work directory is removed")
}

func TestRunScored(t *testing.T) {
	settings := testSettings(t)
	settings.Threshold = 90
	out := filepath.Join(t.TempDir(), "scored.txt")

	result, err := Run(context.Background(), rawNames, Options{
		Settings:    settings,
		Score:       scorer.NewScorer().Score,
		OutputPath:  out,
		KeepWorkDir: true,
	})
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "(\"john smith\", \"jon smith\", 100.0)\n", string(got))

	assert.Equal(t, 1, result.Scoring.Emitted)
	assert.Equal(t, 2, result.Scoring.BelowThreshold)
	assert.FileExists(t, filepath.Join(result.WorkDir, "payload.json"))
	assert.FileExists(t, result.CandidatesPath)
}

type failingComparator struct{}

func (failingComparator) Compare(ctx context.Context, payloadPath, outPath string) error {
	return errors.New("boom")
}

func TestRunComparatorFailure(t *testing.T) {
	_, err := Run(context.Background(), rawNames, Options{
		Settings:   testSettings(t),
		Comparator: failingComparator{},
		OutputPath: filepath.Join(t.TempDir(), "out.txt"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comparator failed: boom")
}

func TestRunValidation(t *testing.T) {
	_, err := Run(context.Background(), rawNames, Options{Settings: testSettings(t)})
	assert.Error(t, err)

	bad := testSettings(t)
	bad.Workers = 0
	_, err = Run(context.Background(), rawNames, Options{Settings: bad, OutputPath: "out.txt"})
	assert.Error(t, err)
}

func TestReadNames(t *testing.T) {
	names, err := ReadNames(strings.NewReader("John Smith\n\nMary Jones\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"John Smith", "", "Mary Jones"}, names)

	path := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(path, []byte("a b\nc d\n"), 0o644))
	names, err = (&FileSource{Path: path}).LoadNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a b", "c d"}, names)

	_, err = (&FileSource{Path: filepath.Join(t.TempDir(), "missing")}).LoadNames(context.Background())
	assert.Error(t, err)
}

func TestNewComparator(t *testing.T) {
	s := config.DefaultSettings()
	assert.IsType(t, &comparator.InProcess{}, NewComparator(s))

	s.ComparatorPath = "/usr/local/bin/compare-all-the-names"
	ext, ok := NewComparator(s).(*comparator.External)
	require.True(t, ok)
	assert.Equal(t, s.ComparatorPath, ext.Path)
}

func TestPolicy(t *testing.T) {
	s := config.DefaultSettings()
	assert.Equal(t, stream.PolicyAbort, Policy(s))
	s.SkipMalformed = true
	assert.Equal(t, stream.PolicySkip, Policy(s))
}

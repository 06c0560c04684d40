// Package comparator turns a corpus payload into candidate name pairs. The
// work is delegated either to an external binary or to the in-process
// implementation; both read a JSON payload file and write one
// ("name a", "name b") line per candidate.
package comparator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/compare-names/internal/debug"
)

// Comparator produces candidate pairs from a payload file
type Comparator interface {
	Compare(ctx context.Context, payloadPath, outPath string) error
}

// ExitError reports a comparator binary that exited unsuccessfully
type ExitError struct {
	Path   string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("comparator %s exited with code %d", e.Path, e.Code)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// External runs a comparator binary as `<Path> <payload> <out>`. Failures are
// returned as is and never retried.
type External struct {
	Path  string
	Debug bool
}

// Compare runs the binary and waits for it
func (e *External) Compare(ctx context.Context, payloadPath, outPath string) error {
	defer debug.DebugTiming(e.Debug, "external comparator")()

	cmd := exec.CommandContext(ctx, e.Path, payloadPath, outPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	debug.DebugOutput(e.Debug, "Running %s %s %s", e.Path, payloadPath, outPath)
	err := cmd.Run()
	if out := strings.TrimSpace(stdout.String()); out != "" {
		debug.DebugOutput(e.Debug, "Comparator output: %s", out)
	}
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("comparator %s: %w", e.Path, ctxErr)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Path: e.Path, Code: exitErr.ExitCode(), Stderr: stderr.String()}
	}
	return fmt.Errorf("failed to run comparator %s: %w", e.Path, err)
}

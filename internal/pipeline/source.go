package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/compare-names/internal/db"
)

// NameSource yields raw, uncleaned names
type NameSource interface {
	LoadNames(ctx context.Context) ([]string, error)
}

// FileSource reads one name per line. "-" reads standard input.
type FileSource struct {
	Path string
}

// LoadNames reads the file
func (s *FileSource) LoadNames(ctx context.Context) ([]string, error) {
	if s.Path == "-" {
		return ReadNames(os.Stdin)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open names file: %w", err)
	}
	defer f.Close()
	return ReadNames(f)
}

// ReadNames collects the lines of r. Blank lines are kept; they clean to the
// blank name.
func ReadNames(r io.Reader) ([]string, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return names, nil
}

// DBSource runs a query against postgres
type DBSource struct {
	Query string
}

// LoadNames connects, runs the query and closes the connection
func (s *DBSource) LoadNames(ctx context.Context) ([]string, error) {
	conn, err := db.NewConnection(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	query := s.Query
	if query == "" {
		query = db.NamesQuery()
	}
	return conn.LoadNames(ctx, query)
}

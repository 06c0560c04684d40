// Package db reads raw names from postgres.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/compare-names/internal/config"
)

// DefaultNamesQuery selects the raw names to compare. The first column of
// every row is used.
const DefaultNamesQuery = "SELECT full_name FROM person_name"

// Connection holds the database connection
type Connection struct {
	DB *sql.DB
}

// DSN builds the connection string from the PG* environment variables
func DSN() string {
	host := config.GetEnv("PGHOST", "localhost")
	port := config.GetEnv("PGPORT", "5432")
	user := config.GetEnv("PGUSER", "user")
	password := config.GetEnv("PGPASSWORD", "password")
	dbname := config.GetEnv("PGDATABASE", "names")
	sslmode := config.GetEnv("PGSSLMODE", "disable")

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)
}

// NewConnection opens and pings a postgres connection
func NewConnection(ctx context.Context) (*Connection, error) {
	db, err := sql.Open("postgres", DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	return &Connection{DB: db}, nil
}

// Close closes the database connection
func (c *Connection) Close() error {
	return c.DB.Close()
}

// NamesQuery returns the configured names query
func NamesQuery() string {
	return config.GetEnv("NAMES_QUERY", DefaultNamesQuery)
}

// LoadNames runs query and collects the first column of each row. NULLs
// are kept as empty strings so they clean to the blank name.
func (c *Connection) LoadNames(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty names query")
	}

	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query names: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("names query returned no columns")
	}

	var names []string
	dest := make([]interface{}, len(cols))
	for i := range dest {
		dest[i] = new(sql.RawBytes)
	}
	var name sql.NullString
	dest[0] = &name

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan name: %w", err)
		}
		names = append(names, name.String)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read names: %w", err)
	}
	return names, nil
}

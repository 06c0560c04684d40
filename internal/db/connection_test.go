package db

import (
	"testing"
)

func TestDSN(t *testing.T) {
	t.Setenv("PGHOST", "db.internal")
	t.Setenv("PGPORT", "6543")
	t.Setenv("PGUSER", "reader")
	t.Setenv("PGPASSWORD", "secret")
	t.Setenv("PGDATABASE", "census")
	t.Setenv("PGSSLMODE", "")

	want := "host=db.internal port=6543 user=reader password=secret dbname=census sslmode=disable"
	if got := DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

func TestNamesQuery(t *testing.T) {
	t.Setenv("NAMES_QUERY", "")
	if got := NamesQuery(); got != DefaultNamesQuery {
		t.Errorf("NamesQuery() = %q, want default", got)
	}

	t.Setenv("NAMES_QUERY", "SELECT name FROM people")
	if got := NamesQuery(); got != "SELECT name FROM people" {
		t.Errorf("NamesQuery() = %q", got)
	}
}

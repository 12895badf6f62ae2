package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns a private in-memory SQLite database with the documents
// table in place. It is closed when the test ends.
func NewTestDB(t testing.TB) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("creating documents table: %v", err)
	}
	return database
}

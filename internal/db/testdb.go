package db

import (
	"database/sql"
	"testing"
)

// NewTestDB returns an empty in-memory stockroom database with the schema in
// place. The test fails immediately if it cannot be created, and the
// database is closed during test cleanup.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("preparing stockroom schema: %v", err)
	}
	return database
}

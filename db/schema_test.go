// ABOUTME: Tests for database schema creation
// ABOUTME: Uses in-memory SQLite for fast isolated tests
package db

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestInitSchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema should be idempotent: %v", err)
	}

	var name string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='records'").Scan(&name)
	if err != nil {
		t.Errorf("Table records not found: %v", err)
	}

	var indexName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name='idx_records_kind_parent'").Scan(&indexName)
	if err != nil {
		t.Errorf("Index idx_records_kind_parent not found: %v", err)
	}
}

func TestRecordsUniquePerKind(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}

	insert := `INSERT INTO records (kind, id, data, created_at, updated_at) VALUES (?, ?, '{}', datetime('now'), datetime('now'))`
	if _, err := db.Exec(insert, "venue", "v1"); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec(insert, "venue", "v1"); err == nil {
		t.Error("Expected duplicate (kind, id) to be rejected")
	}
	if _, err := db.Exec(insert, "product", "v1"); err != nil {
		t.Errorf("Same id under another kind should be allowed: %v", err)
	}
}

package db

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrate(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer conn.Close()

	if err := Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// a second run is a no-op
	if err := Migrate(conn); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	version, err := Version(conn)
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected schema version 1, got %d", version)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM estimates`).Scan(&count); err != nil {
		t.Fatalf("query estimates: %v", err)
	}
	if count != 0 {
		t.Errorf("expected empty table, got %d rows", count)
	}
}

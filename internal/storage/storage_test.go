package storage

import (
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenMemory()
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenMemory(t *testing.T) {
	s, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestOpenWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "chronoflow.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — should succeed, not re-migrate, and keep data.
	s2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, err := s2.Get("k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != "v" {
		t.Fatalf("expected persisted value, got %q ok=%v", v, ok)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestSQLite(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := newTestSQLite(t)
	_, ok, err := s.Get("absent")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("missing key should report ok=false")
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestSQLite(t)
	s.Set("k", "one")
	if err := s.Set("k", "two"); err != nil {
		t.Fatal(err)
	}
	v, ok, _ := s.Get("k")
	if !ok || v != "two" {
		t.Fatalf("expected overwritten value, got %q", v)
	}
}

func TestDelete(t *testing.T) {
	s := newTestSQLite(t)
	s.Set("k", "v")
	if err := s.Delete("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("deleted key should be gone")
	}

	// Deleting an absent key is not an error.
	if err := s.Delete("absent"); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMemoryImplementsStorage(t *testing.T) {
	var _ Storage = NewMemory()
	var _ Storage = &SQLite{}

	m := NewMemory()
	m.Set("a", "1")
	v, ok, _ := m.Get("a")
	if !ok || v != "1" {
		t.Fatalf("expected a=1, got %q ok=%v", v, ok)
	}
	m.Delete("a")
	if _, ok, _ := m.Get("a"); ok {
		t.Fatal("deleted key should be gone")
	}
}

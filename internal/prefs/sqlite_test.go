package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
	if s.Namespace() != DefaultNamespace {
		t.Errorf("Namespace() = %q, want %q", s.Namespace(), DefaultNamespace)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/test.db", "")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestOpen_Pragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	// FULL = 2
	if err := s.verifyPragma("synchronous", "2"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("user_version", "1"); err != nil {
		t.Error(err)
	}
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	s.Close()

	if _, err := Open(path, ""); err == nil {
		t.Error("expected error for newer schema version, got nil")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s1, err := Open(path, "")
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	if err := s1.SetInt(ctx, "cntrVal", 3); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}
	if err := s1.AppendString(ctx, "cntrShake", "1000,"); err != nil {
		t.Fatalf("AppendString() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path, "")
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	n, err := s2.GetInt(ctx, "cntrVal", 0)
	if err != nil || n != 3 {
		t.Errorf("GetInt() = %d, %v; want 3, nil", n, err)
	}
	str, err := s2.GetString(ctx, "cntrShake", "")
	if err != nil || str != "1000," {
		t.Errorf("GetString() = %q, %v; want %q, nil", str, err, "1000,")
	}
}

func TestSQLiteStore_NamespacesAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	a, err := Open(path, "a")
	if err != nil {
		t.Fatalf("Open(a) failed: %v", err)
	}
	defer a.Close()
	if err := a.SetInt(ctx, "cntrVal", 5); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}

	b, err := Open(path, "b")
	if err != nil {
		t.Fatalf("Open(b) failed: %v", err)
	}
	defer b.Close()

	n, err := b.GetInt(ctx, "cntrVal", -1)
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if n != -1 {
		t.Errorf("namespace b sees %d from namespace a", n)
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &SQLiteStore{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

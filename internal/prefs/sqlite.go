package prefs

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - preferences table
const currentSchemaVersion = 1

const (
	kindInt    = "int"
	kindString = "string"
)

// SQLiteStore is a Store backed by a SQLite database.
// It is not safe for concurrent use by multiple processes writing the same
// namespace.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

var _ Store = (*SQLiteStore)(nil)

// Open creates or opens the SQLite database at path and scopes the store to
// namespace. An empty namespace selects DefaultNamespace.
//
// Applies pragmas and schema automatically. Safe to call repeatedly on the
// same path. Use ":memory:" for a throwaway database.
func Open(path, namespace string) (*SQLiteStore, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: writes are serialized and ":memory:" stays one database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Namespace returns the preference namespace this store reads and writes.
func (s *SQLiteStore) Namespace() string {
	return s.namespace
}

// GetInt returns the int stored at key, or def if the key is absent.
func (s *SQLiteStore) GetInt(ctx context.Context, key string, def int) (int, error) {
	var (
		kind  string
		value sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT kind, int_value FROM preferences
		WHERE namespace = ? AND key = ?
	`, s.namespace, key).Scan(&kind, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get int %q: %w", key, err)
	}
	if kind != kindInt {
		return 0, fmt.Errorf("get int %q: stored as %s: %w", key, kind, ErrTypeMismatch)
	}
	return int(value.Int64), nil
}

// GetString returns the string stored at key, or def if the key is absent.
func (s *SQLiteStore) GetString(ctx context.Context, key, def string) (string, error) {
	var (
		kind  string
		value sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT kind, string_value FROM preferences
		WHERE namespace = ? AND key = ?
	`, s.namespace, key).Scan(&kind, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return "", fmt.Errorf("get string %q: %w", key, err)
	}
	if kind != kindString {
		return "", fmt.Errorf("get string %q: stored as %s: %w", key, kind, ErrTypeMismatch)
	}
	return value.String, nil
}

// SetInt stores value at key, replacing any previous value of either type.
func (s *SQLiteStore) SetInt(ctx context.Context, key string, value int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (namespace, key, kind, int_value, string_value)
		VALUES (?, ?, 'int', ?, NULL)
		ON CONFLICT(namespace, key) DO UPDATE SET
			kind = 'int',
			int_value = excluded.int_value,
			string_value = NULL
	`, s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("set int %q: %w", key, err)
	}
	return nil
}

// SetString stores value at key, replacing any previous value of either type.
func (s *SQLiteStore) SetString(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (namespace, key, kind, int_value, string_value)
		VALUES (?, ?, 'string', NULL, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			kind = 'string',
			int_value = NULL,
			string_value = excluded.string_value
	`, s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("set string %q: %w", key, err)
	}
	return nil
}

// AppendString appends fragment to the string at key in a single statement.
// Returns ErrTypeMismatch if key holds an int.
func (s *SQLiteStore) AppendString(ctx context.Context, key, fragment string) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (namespace, key, kind, int_value, string_value)
		VALUES (?, ?, 'string', NULL, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET
			string_value = COALESCE(preferences.string_value, '') || excluded.string_value
		WHERE preferences.kind = 'string'
	`, s.namespace, key, fragment)
	if err != nil {
		return fmt.Errorf("append string %q: %w", key, err)
	}

	// The conflict branch is skipped when the key holds an int.
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("append string %q: rows affected: %w", key, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("append string %q: stored as %s: %w", key, kindInt, ErrTypeMismatch)
	}
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = FULL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and records the schema
// version. Refuses databases written by a newer schema.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *SQLiteStore) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}

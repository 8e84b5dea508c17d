package resultcache

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"autotranscription/internal/config"
	"autotranscription/internal/transcript"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped when the table layout changes. Existing databases
// with a different version are rejected; delete the cache file to recover.
const schemaVersion = 1

// ErrSchemaMismatch indicates the cache database was created by a different
// tool version.
var ErrSchemaMismatch = errors.New("cache schema version mismatch")

// Key identifies one cached transcription.
type Key struct {
	InputDigest    string
	ModelSize      string
	PolicyRevision int
}

// Entry is one cached transcription row.
type Entry struct {
	Key       Key
	Title     string
	Language  string
	Duration  float64
	WordCount int
	CreatedAt time.Time
}

// Store manages the transcription cache backed by SQLite.
type Store struct {
	db         *sql.DB
	path       string
	maxEntries int
}

// Open initializes or connects to the cache database described by cfg.
func Open(cfg *config.Config) (*Store, error) {
	if !cfg.Cache.Enabled {
		return nil, errors.New("cache is disabled")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Cache.Path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: cfg.Cache.Path, maxEntries: cfg.Cache.MaxEntries}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx,
			"INSERT INTO schema_version (version) VALUES (?)", schemaVersion,
		); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

// Get returns the cached document for key, or false when absent.
func (s *Store) Get(ctx context.Context, key Key) (*transcript.Result, bool, error) {
	var document []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM transcriptions
         WHERE input_digest = ? AND model_size = ? AND policy_revision = ?`,
		key.InputDigest, key.ModelSize, key.PolicyRevision,
	).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	result, err := transcript.Decode(document)
	if err != nil {
		return nil, false, fmt.Errorf("cached document for %s: %w", key.InputDigest, err)
	}
	return result, true, nil
}

// Put stores or replaces the document for key and prunes old entries past the
// configured bound.
func (s *Store) Put(ctx context.Context, key Key, title string, result *transcript.Result) error {
	document, err := transcript.Encode(result)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO transcriptions (
            input_digest, model_size, policy_revision, title,
            language, duration, word_count, document, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (input_digest, model_size, policy_revision) DO UPDATE SET
            title = excluded.title,
            language = excluded.language,
            duration = excluded.duration,
            word_count = excluded.word_count,
            document = excluded.document,
            created_at = excluded.created_at`,
		key.InputDigest,
		key.ModelSize,
		key.PolicyRevision,
		title,
		nullableString(result.LanguageCode()),
		result.Duration,
		result.WordCount(),
		document,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert cache entry: %w", err)
	}

	return s.Prune(ctx, s.maxEntries)
}

// Prune deletes the oldest entries beyond maxEntries. A non-positive bound
// leaves the table untouched.
func (s *Store) Prune(ctx context.Context, maxEntries int) error {
	if maxEntries <= 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM transcriptions WHERE id NOT IN (
            SELECT id FROM transcriptions ORDER BY created_at DESC, id DESC LIMIT ?
        )`,
		maxEntries,
	)
	if err != nil {
		return fmt.Errorf("prune cache: %w", err)
	}
	return nil
}

// Entries lists cached rows newest first, without their documents.
func (s *Store) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT input_digest, model_size, policy_revision, title,
                language, duration, word_count, created_at
         FROM transcriptions ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list cache entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			language  sql.NullString
			createdAt string
		)
		if err := rows.Scan(
			&entry.Key.InputDigest,
			&entry.Key.ModelSize,
			&entry.Key.PolicyRevision,
			&entry.Title,
			&language,
			&entry.Duration,
			&entry.WordCount,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan cache entry: %w", err)
		}
		if language.Valid {
			entry.Language = language.String
		}
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cache entries: %w", err)
	}
	return entries, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

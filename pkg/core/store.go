package core

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonclaudedotnet/vectorvault/internal/encoding"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore is a timestamp-indexed vector store backed by SQLite.
//
// The store assumes a batch-then-query workflow with a single writer. The
// mutex only guards the handle lifecycle (Init/Close) against in-flight
// operations; it is not a concurrent-writer contract.
type SQLiteStore struct {
	db           *sql.DB
	config       Config
	mu           sync.RWMutex
	closed       bool
	similarityFn SimilarityFunc
	logger       Logger
}

// New creates a new vector store at the given path with default configuration.
// Call Init before use.
func New(path string) (*SQLiteStore, error) {
	config := DefaultConfig()
	config.Path = path

	return NewWithConfig(config)
}

// NewWithConfig creates a new vector store with custom configuration.
func NewWithConfig(config Config) (*SQLiteStore, error) {
	if config.Path == "" {
		return nil, wrapError("init", fmt.Errorf("database path cannot be empty"))
	}

	if config.SimilarityFn == nil {
		config.SimilarityFn = CosineSimilarity
	}
	if config.Logger == nil {
		config.Logger = NopLogger()
	}

	return &SQLiteStore{
		config:       config,
		similarityFn: config.SimilarityFn,
		logger:       config.Logger,
	}, nil
}

// Init opens or creates the database and creates the schema if absent.
// Calling Init on an already-initialized store is a no-op, and reopening an
// existing database preserves its records.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return wrapError("init", ErrStoreClosed)
	}
	if s.db != nil {
		return nil
	}

	if dir := filepath.Dir(s.config.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return wrapError("init", fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
		}
	}

	// WAL keeps readers usable during batch loads; busy_timeout waits up to
	// 5s for a lock instead of failing immediately.
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)", s.config.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return wrapError("init", fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
	}

	// sql.Open is lazy; ping so permission and disk errors surface here
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return wrapError("init", fmt.Errorf("%w: %v", ErrStorageUnavailable, err))
	}

	if err := s.createTables(ctx, db); err != nil {
		_ = db.Close()
		return wrapError("init", err)
	}

	s.db = db
	s.logger.Info("store initialized", "path", s.config.Path)

	return nil
}

// createTables creates the necessary database tables and indexes.
func (s *SQLiteStore) createTables(ctx context.Context, db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS batches (
		id TEXT PRIMARY KEY,
		source_type TEXT NOT NULL,
		source_file TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS vectors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_type TEXT NOT NULL,
		source_file TEXT NOT NULL,
		timestamp REAL NOT NULL,
		batch_id TEXT REFERENCES batches(id),
		vector BLOB NOT NULL,
		metadata TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_vectors_timestamp ON vectors(timestamp);
	CREATE INDEX IF NOT EXISTS idx_vectors_source_type ON vectors(source_type);
	CREATE INDEX IF NOT EXISTS idx_vectors_batch_id ON vectors(batch_id);
	`

	if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// StoreBatch inserts a batch of observations for one source type and source
// file in a single transaction. Either every record is stored or none is; the
// returned count equals len(obs) on success. Duplicate timestamps are allowed.
func (s *SQLiteStore) StoreBatch(ctx context.Context, sourceType, sourceFile string, obs []Observation) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed || s.db == nil {
		return 0, wrapError("store_batch", ErrStoreClosed)
	}

	if err := encoding.ValidateSourceType(sourceType); err != nil {
		return 0, wrapError("store_batch", err)
	}

	if len(obs) == 0 {
		return 0, nil
	}

	// Validate the whole batch before writing anything, so a malformed record
	// rejects the batch instead of leaving a partial ingest behind.
	for i, o := range obs {
		if err := encoding.ValidateVector(o.Vector); err != nil {
			return 0, wrapError("store_batch", fmt.Errorf("%w: record %d: %v", ErrMalformedInput, i, err))
		}
	}

	batchID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, wrapError("store_batch", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO batches (id, source_type, source_file, record_count, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, batchID, sourceType, sourceFile, len(obs), now)
	if err != nil {
		return 0, wrapError("store_batch", fmt.Errorf("failed to record batch: %w", err))
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (source_type, source_file, timestamp, batch_id, vector, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, wrapError("store_batch", fmt.Errorf("failed to prepare statement: %w", err))
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, o := range obs {
		vectorBytes, err := encoding.EncodeVector(o.Vector)
		if err != nil {
			return 0, wrapError("store_batch", fmt.Errorf("%w: record %d: %v", ErrMalformedInput, i, err))
		}

		metadataJSON, err := encoding.EncodeMetadata(o.Metadata)
		if err != nil {
			return 0, wrapError("store_batch", fmt.Errorf("%w: record %d: %v", ErrMalformedInput, i, err))
		}

		if _, err := stmt.ExecContext(ctx, sourceType, sourceFile, o.Timestamp, batchID, vectorBytes, metadataJSON, now); err != nil {
			return 0, wrapError("store_batch", fmt.Errorf("failed to insert record %d: %w", i, err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, wrapError("store_batch", fmt.Errorf("failed to commit transaction: %w", err))
	}

	s.logger.Info("stored batch", "batch", batchID, "source_type", sourceType, "source_file", sourceFile, "count", len(obs))

	return len(obs), nil
}

// DeleteBatch removes every record ingested by a single StoreBatch call,
// identified by its batch ID. Deletion is an extension for undoing a bad
// extraction run; committed records are otherwise immutable.
func (s *SQLiteStore) DeleteBatch(ctx context.Context, batchID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed || s.db == nil {
		return wrapError("delete_batch", ErrStoreClosed)
	}

	if batchID == "" {
		return wrapError("delete_batch", fmt.Errorf("batch ID cannot be empty"))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapError("delete_batch", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM vectors WHERE batch_id = ?", batchID); err != nil {
		return wrapError("delete_batch", fmt.Errorf("failed to delete records: %w", err))
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM batches WHERE id = ?", batchID)
	if err != nil {
		return wrapError("delete_batch", fmt.Errorf("failed to delete batch: %w", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return wrapError("delete_batch", fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rowsAffected == 0 {
		return wrapError("delete_batch", ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return wrapError("delete_batch", fmt.Errorf("failed to commit transaction: %w", err))
	}

	s.logger.Info("deleted batch", "batch", batchID)

	return nil
}

package vault

import (
	"context"
	"fmt"

	"github.com/jonclaudedotnet/vectorvault/pkg/core"
)

// DB represents an open vector store.
type DB struct {
	store *core.SQLiteStore
}

// Config represents database configuration.
type Config struct {
	Path         string              // Database file path
	SimilarityFn core.SimilarityFunc // Similarity function (default: cosine)
	Logger       core.Logger         // Logger (default: nop)
}

// DefaultConfig returns default configuration for the given path.
func DefaultConfig(path string) Config {
	return Config{
		Path:         path,
		SimilarityFn: core.CosineSimilarity,
	}
}

// Open opens or creates a vector store at the configured path.
func Open(config Config) (*DB, error) {
	store, err := core.NewWithConfig(core.Config{
		Path:         config.Path,
		SimilarityFn: config.SimilarityFn,
		Logger:       config.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	if err := store.Init(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return &DB{store: store}, nil
}

// Store returns the underlying vector store.
func (db *DB) Store() *core.SQLiteStore {
	return db.store
}

// Close closes the database.
func (db *DB) Close() error {
	return db.store.Close()
}

// Ingest stores a batch of observations for one source type and source file.
func (db *DB) Ingest(ctx context.Context, sourceType, sourceFile string, obs []core.Observation) (int, error) {
	return db.store.StoreBatch(ctx, sourceType, sourceFile, obs)
}

// Timeline returns records in [start, end], optionally filtered by source
// type. Pass math.Inf(1) as end for a full scan.
func (db *DB) Timeline(ctx context.Context, start, end float64, sourceType string) ([]core.VectorRecord, error) {
	return db.store.QueryRange(ctx, start, end, sourceType)
}

// Summary returns per-source-type statistics for the stored timeline.
func (db *DB) Summary(ctx context.Context) (*core.Summary, error) {
	return db.store.Summarize(ctx)
}

// SimilarMoments returns the moments most similar to the one at the target
// timestamp, excluding everything within windowSize seconds of it.
func (db *DB) SimilarMoments(ctx context.Context, targetTimestamp, windowSize float64, sourceType string) ([]core.Moment, error) {
	return db.store.FindSimilar(ctx, targetTimestamp, windowSize, sourceType)
}

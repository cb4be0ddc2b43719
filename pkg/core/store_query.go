package core

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/jonclaudedotnet/vectorvault/internal/encoding"
)

// QueryRange returns all records with start <= timestamp <= end, optionally
// filtered to one source type (empty sourceType means all types). Results are
// ordered by ascending timestamp, ties broken by ID. An inverted range
// (start > end) returns an empty result, not an error, and end may be +Inf
// for a full scan.
func (s *SQLiteStore) QueryRange(ctx context.Context, start, end float64, sourceType string) ([]VectorRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRangeLocked(ctx, start, end, sourceType)
}

// queryRangeLocked is QueryRange without lock acquisition, for callers that
// already hold the read lock.
func (s *SQLiteStore) queryRangeLocked(ctx context.Context, start, end float64, sourceType string) ([]VectorRecord, error) {
	if s.closed || s.db == nil {
		return nil, wrapError("query_range", ErrStoreClosed)
	}

	if start > end {
		return nil, nil
	}

	query := `
		SELECT id, source_type, source_file, timestamp, vector, metadata, created_at
		FROM vectors
		WHERE timestamp >= ?`
	args := []any{start}

	// An infinite upper bound cannot be bound as a SQL parameter; drop the
	// predicate instead.
	if !math.IsInf(end, 1) {
		query += " AND timestamp <= ?"
		args = append(args, end)
	}

	if sourceType != "" {
		query += " AND source_type = ?"
		args = append(args, sourceType)
	}

	query += " ORDER BY timestamp ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapError("query_range", fmt.Errorf("failed to query records: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var records []VectorRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, wrapError("query_range", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("query_range", fmt.Errorf("error iterating rows: %w", err))
	}

	return records, nil
}

// scanRecord scans a row into a VectorRecord.
func scanRecord(rows *sql.Rows) (VectorRecord, error) {
	var record VectorRecord
	var vectorBytes []byte
	var metadataJSON sql.NullString
	var createdAt string

	if err := rows.Scan(&record.ID, &record.SourceType, &record.SourceFile, &record.Timestamp, &vectorBytes, &metadataJSON, &createdAt); err != nil {
		return VectorRecord{}, fmt.Errorf("failed to scan row: %w", err)
	}

	vector, err := encoding.DecodeVector(vectorBytes)
	if err != nil {
		return VectorRecord{}, fmt.Errorf("failed to decode vector: %w", err)
	}
	record.Vector = vector

	if metadataJSON.Valid {
		metadata, err := encoding.DecodeMetadata(metadataJSON.String)
		if err != nil {
			return VectorRecord{}, fmt.Errorf("failed to decode metadata: %w", err)
		}
		record.Metadata = metadata
	}

	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		record.CreatedAt = t
	}

	return record, nil
}

// Summarize returns per-source-type statistics plus overall totals. The
// overall duration is the maximum timestamp across all source types. An empty
// store yields zero counts and zero duration without error.
func (s *SQLiteStore) Summarize(ctx context.Context) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed || s.db == nil {
		return nil, wrapError("summarize", ErrStoreClosed)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT source_type, COUNT(*), MIN(timestamp), MAX(timestamp)
		FROM vectors
		GROUP BY source_type
		ORDER BY source_type
	`)
	if err != nil {
		return nil, wrapError("summarize", fmt.Errorf("failed to query statistics: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	summary := &Summary{Sources: make(map[string]SourceSummary)}

	for rows.Next() {
		var sourceType string
		var count int
		var minTime, maxTime float64

		if err := rows.Scan(&sourceType, &count, &minTime, &maxTime); err != nil {
			return nil, wrapError("summarize", fmt.Errorf("failed to scan row: %w", err))
		}

		summary.Sources[sourceType] = SourceSummary{
			Count:        count,
			MinTimestamp: minTime,
			MaxTimestamp: maxTime,
			Duration:     maxTime - minTime,
		}
		summary.TotalVectors += count
		if maxTime > summary.Duration {
			summary.Duration = maxTime
		}
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("summarize", fmt.Errorf("error iterating rows: %w", err))
	}

	return summary, nil
}

// Batches lists every recorded ingest run, oldest first.
func (s *SQLiteStore) Batches(ctx context.Context) ([]BatchInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed || s.db == nil {
		return nil, wrapError("batches", ErrStoreClosed)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source_type, source_file, record_count, created_at
		FROM batches
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, wrapError("batches", fmt.Errorf("failed to query batches: %w", err))
	}
	defer func() {
		_ = rows.Close()
	}()

	var batches []BatchInfo
	for rows.Next() {
		var b BatchInfo
		var createdAt string

		if err := rows.Scan(&b.ID, &b.SourceType, &b.SourceFile, &b.RecordCount, &createdAt); err != nil {
			return nil, wrapError("batches", fmt.Errorf("failed to scan row: %w", err))
		}

		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			b.CreatedAt = t
		}

		batches = append(batches, b)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapError("batches", fmt.Errorf("error iterating rows: %w", err))
	}

	return batches, nil
}

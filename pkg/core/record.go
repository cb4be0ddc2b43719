package core

import "time"

// VectorRecord is a single stored observation on the capture timeline.
type VectorRecord struct {
	ID         int64          `json:"id"`
	SourceType string         `json:"sourceType"`
	SourceFile string         `json:"sourceFile"`
	Timestamp  float64        `json:"timestamp"`
	Vector     []float64      `json:"vector"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// Observation is the caller-supplied part of a record before the store
// assigns an ID. Metadata is passed through verbatim and never interpreted.
type Observation struct {
	Timestamp float64        `json:"timestamp"`
	Vector    []float64      `json:"vector"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Moment is one ranked result of a similarity search.
type Moment struct {
	Timestamp  float64        `json:"timestamp"`
	Similarity float64        `json:"similarity"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// SourceSummary holds per-source-type statistics.
type SourceSummary struct {
	Count        int     `json:"count"`
	MinTimestamp float64 `json:"minTimestamp"`
	MaxTimestamp float64 `json:"maxTimestamp"`
	Duration     float64 `json:"duration"`
}

// Summary holds statistics for the whole store. Duration is the maximum
// timestamp seen across all source types.
type Summary struct {
	TotalVectors int                      `json:"totalVectors"`
	Duration     float64                  `json:"duration"`
	Sources      map[string]SourceSummary `json:"sources"`
}

// BatchInfo describes one ingest run recorded by StoreBatch.
type BatchInfo struct {
	ID          string    `json:"id"`
	SourceType  string    `json:"sourceType"`
	SourceFile  string    `json:"sourceFile"`
	RecordCount int       `json:"recordCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Config holds store configuration.
type Config struct {
	Path         string         // Database file path
	SimilarityFn SimilarityFunc // Similarity function (default: cosine)
	Logger       Logger         // Logger (default: nop)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SimilarityFn: CosineSimilarity,
		Logger:       NopLogger(),
	}
}

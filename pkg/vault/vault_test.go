package vault

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/jonclaudedotnet/vectorvault/pkg/core"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(DefaultConfig(filepath.Join(t.TempDir(), "vault.db")))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

func TestOpenIngestQuery(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	count, err := db.Ingest(ctx, "audio", "meeting.wav", []core.Observation{
		{Timestamp: 1.0, Vector: []float64{1, 0}},
		{Timestamp: 2.0, Vector: []float64{0, 1}},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("Ingest() count = %d, want 2", count)
	}

	records, err := db.Timeline(ctx, 0, math.Inf(1), "audio")
	if err != nil {
		t.Fatalf("Timeline() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Timeline() returned %d records, want 2", len(records))
	}

	summary, err := db.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary() error = %v", err)
	}
	if summary.TotalVectors != 2 {
		t.Errorf("Summary().TotalVectors = %d, want 2", summary.TotalVectors)
	}
}

func TestSimilarMoments(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.Ingest(ctx, "audio", "meeting.wav", []core.Observation{
		{Timestamp: 10.0, Vector: []float64{1, 0}},
		{Timestamp: 90.0, Vector: []float64{0.9, 0.1}},
		{Timestamp: 180.0, Vector: []float64{0, 1}},
	}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	moments, err := db.SimilarMoments(ctx, 10.0, 30.0, "audio")
	if err != nil {
		t.Fatalf("SimilarMoments() error = %v", err)
	}
	if len(moments) != 2 {
		t.Fatalf("SimilarMoments() returned %d moments, want 2", len(moments))
	}
	if moments[0].Timestamp != 90.0 {
		t.Errorf("moments[0].Timestamp = %v, want the near-parallel vector at 90", moments[0].Timestamp)
	}
}

func TestOpenCustomSimilarity(t *testing.T) {
	config := DefaultConfig(filepath.Join(t.TempDir(), "vault.db"))
	config.SimilarityFn = core.EuclideanDist

	db, err := Open(config)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if _, err := db.Ingest(ctx, "visual", "clip.mp4", []core.Observation{
		{Timestamp: 10.0, Vector: []float64{0, 0}},
		{Timestamp: 100.0, Vector: []float64{1, 1}},
		{Timestamp: 200.0, Vector: []float64{5, 5}},
	}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	moments, err := db.SimilarMoments(ctx, 10.0, 30.0, "visual")
	if err != nil {
		t.Fatalf("SimilarMoments() error = %v", err)
	}
	if len(moments) != 2 {
		t.Fatalf("SimilarMoments() returned %d moments, want 2", len(moments))
	}
	// Negative Euclidean distance ranks the closer vector first
	if moments[0].Timestamp != 100.0 {
		t.Errorf("moments[0].Timestamp = %v, want 100", moments[0].Timestamp)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open() with empty path expected error, got nil")
	}
}

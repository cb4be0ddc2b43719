// Package vault provides a persistent, timestamp-indexed store for feature
// vectors extracted from heterogeneous sources (audio, visual, semantic,
// email), backed by SQLite using modernc.org/sqlite (no CGO required).
//
// Vectors from every modality share one timeline. Each record carries a
// source type tag, the originating file, a timestamp in seconds, the vector
// itself and an opaque metadata document. The store answers inclusive
// time-range queries and brute-force cosine similarity searches over that
// timeline.
//
// # Quick Start
//
//	db, err := vault.Open(vault.DefaultConfig("conversation.db"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
//
//	ctx := context.Background()
//
//	// Store a batch of audio feature vectors
//	db.Ingest(ctx, "audio", "conversation_audio.wav", []core.Observation{
//		{Timestamp: 12.5, Vector: []float64{0.1, 0.9}, Metadata: map[string]any{"rms": 0.42}},
//	})
//
//	// Find moments similar to what happened at t=120s
//	moments, err := db.SimilarMoments(ctx, 120.0, 30.0, "audio")
//
// For lower-level control (custom similarity function, logger) use
// core.NewWithConfig directly.
package vault

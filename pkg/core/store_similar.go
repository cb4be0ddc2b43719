package core

import (
	"context"
	"math"
	"sort"
)

const (
	// referenceWindow is the fixed radius, in timeline seconds, searched for a
	// reference vector around the target timestamp.
	referenceWindow = 5.0

	// similarTopK is the number of ranked moments returned.
	similarTopK = 10
)

// FindSimilar ranks stored vectors by similarity to the moment at the target
// timestamp and returns the top 10. The reference vector is the earliest
// record within ±5 seconds of the target (ErrNoReferenceVector if none
// matches the filter). Candidates closer than windowSize to the target are
// excluded so the ranking is not dominated by trivially adjacent samples.
//
// This is a brute-force scan over the candidate set, which is fine at the
// target scale of low tens of thousands of records.
func (s *SQLiteStore) FindSimilar(ctx context.Context, targetTimestamp, windowSize float64, sourceType string) ([]Moment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	references, err := s.queryRangeLocked(ctx, targetTimestamp-referenceWindow, targetTimestamp+referenceWindow, sourceType)
	if err != nil {
		return nil, err
	}
	if len(references) == 0 {
		return nil, wrapError("find_similar", ErrNoReferenceVector)
	}

	reference := references[0].Vector

	candidates, err := s.queryRangeLocked(ctx, 0, math.Inf(1), sourceType)
	if err != nil {
		return nil, err
	}

	moments := make([]Moment, 0, len(candidates))
	for _, candidate := range candidates {
		if math.Abs(candidate.Timestamp-targetTimestamp) < windowSize {
			continue
		}

		moments = append(moments, Moment{
			Timestamp:  candidate.Timestamp,
			Similarity: s.similarityFn(reference, candidate.Vector),
			Metadata:   candidate.Metadata,
		})
	}

	// Stable sort keeps timestamp order for equal scores.
	sort.SliceStable(moments, func(i, j int) bool {
		return moments[i].Similarity > moments[j].Similarity
	})

	if len(moments) > similarTopK {
		moments = moments[:similarTopK]
	}

	s.logger.Debug("similarity search", "target", targetTimestamp, "window", windowSize, "source_type", sourceType, "results", len(moments))

	return moments, nil
}

package core

import "math"

// SimilarityFunc calculates similarity between two vectors. Higher values
// indicate more similar vectors.
type SimilarityFunc func(a, b []float64) float64

// Predefined similarity functions
var (
	// CosineSimilarity calculates cosine similarity between two vectors
	CosineSimilarity = cosineSimilarity

	// DotProduct calculates dot product between two vectors
	DotProduct = dotProduct

	// EuclideanDist calculates negative Euclidean distance (higher = more similar)
	EuclideanDist = euclideanDistance
)

// cosineSimilarity calculates cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// Vectors of differing length are treated as unrelated and score 0.0, as do
// zero-magnitude vectors. Modalities produce vectors of different widths, so
// a cross-modality comparison degrades to "dissimilar" instead of failing.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dot, normA, normB float64
	for i := 0; i < len(a); i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0.0 || normB == 0.0 {
		return 0.0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// dotProduct calculates the dot product between two vectors.
func dotProduct(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var result float64
	for i := 0; i < len(a); i++ {
		result += a[i] * b[i]
	}

	return result
}

// euclideanDistance calculates negative Euclidean distance for similarity
// ranking. Returns negative distance so higher values indicate more similarity.
func euclideanDistance(a, b []float64) float64 {
	if len(a) != len(b) {
		return math.Inf(-1)
	}

	var sum float64
	for i := 0; i < len(a); i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return -math.Sqrt(sum)
}

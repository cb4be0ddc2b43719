package core

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		vectorA  []float64
		vectorB  []float64
		expected float64
		epsilon  float64
	}{
		{
			name:     "identical vectors",
			vectorA:  []float64{1.0, 0.0, 0.0},
			vectorB:  []float64{1.0, 0.0, 0.0},
			expected: 1.0,
			epsilon:  1e-9,
		},
		{
			name:     "identical direction different magnitude",
			vectorA:  []float64{1.0, 2.0, 3.0},
			vectorB:  []float64{2.0, 4.0, 6.0},
			expected: 1.0,
			epsilon:  1e-9,
		},
		{
			name:     "orthogonal vectors",
			vectorA:  []float64{1.0, 0.0},
			vectorB:  []float64{0.0, 1.0},
			expected: 0.0,
			epsilon:  1e-9,
		},
		{
			name:     "opposite vectors",
			vectorA:  []float64{1.0, 0.0},
			vectorB:  []float64{-1.0, 0.0},
			expected: -1.0,
			epsilon:  1e-9,
		},
		{
			name:     "mismatched lengths score zero",
			vectorA:  []float64{1.0, 2.0, 3.0, 4.0, 5.0},
			vectorB:  []float64{1.0, 2.0},
			expected: 0.0,
			epsilon:  0,
		},
		{
			name:     "zero magnitude scores zero",
			vectorA:  []float64{0.0, 0.0},
			vectorB:  []float64{1.0, 1.0},
			expected: 0.0,
			epsilon:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.vectorA, tt.vectorB)
			if math.Abs(got-tt.expected) > tt.epsilon {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	vectors := [][]float64{
		{0.3, -1.2, 4.5},
		{2.0, 2.0, 2.0},
		{-0.7, 0.01, 9.9},
		{100.0, -50.0, 0.5},
	}

	for _, a := range vectors {
		for _, b := range vectors {
			got := CosineSimilarity(a, b)
			if got < -1.0-1e-9 || got > 1.0+1e-9 {
				t.Errorf("CosineSimilarity(%v, %v) = %v, outside [-1, 1]", a, b, got)
			}
		}
	}
}

func TestDotProduct(t *testing.T) {
	if got := DotProduct([]float64{1, 2, 3}, []float64{4, 5, 6}); got != 32.0 {
		t.Errorf("DotProduct() = %v, want 32", got)
	}
	if got := DotProduct([]float64{1, 2}, []float64{1}); got != 0.0 {
		t.Errorf("DotProduct() with mismatched lengths = %v, want 0", got)
	}
}

func TestEuclideanDist(t *testing.T) {
	if got := EuclideanDist([]float64{0, 0}, []float64{3, 4}); math.Abs(got-(-5.0)) > 1e-9 {
		t.Errorf("EuclideanDist() = %v, want -5", got)
	}

	// Identical vectors rank highest
	if got := EuclideanDist([]float64{1, 1}, []float64{1, 1}); got != 0.0 {
		t.Errorf("EuclideanDist() for identical vectors = %v, want 0", got)
	}

	if got := EuclideanDist([]float64{1}, []float64{1, 2}); !math.IsInf(got, -1) {
		t.Errorf("EuclideanDist() with mismatched lengths = %v, want -Inf", got)
	}
}

package encoding

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestVectorRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		vector []float64
	}{
		{
			name:   "simple vector",
			vector: []float64{1.0, 2.0, 3.0},
		},
		{
			name:   "single element",
			vector: []float64{42.0},
		},
		{
			name:   "negative and tiny values",
			vector: []float64{-1.5, 1e-12, 0.0},
		},
		{
			name:   "audio-width vector",
			vector: make([]float64, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.vector) == 28 {
				for i := range tt.vector {
					tt.vector[i] = float64(i) * 0.1
				}
			}

			encoded, err := EncodeVector(tt.vector)
			if err != nil {
				t.Fatalf("EncodeVector() error = %v", err)
			}

			decoded, err := DecodeVector(encoded)
			if err != nil {
				t.Fatalf("DecodeVector() error = %v", err)
			}

			if !reflect.DeepEqual(decoded, tt.vector) {
				t.Errorf("round trip = %v, want %v", decoded, tt.vector)
			}
		})
	}
}

func TestEncodeVectorNil(t *testing.T) {
	if _, err := EncodeVector(nil); !errors.Is(err, ErrInvalidVector) {
		t.Errorf("EncodeVector(nil) error = %v, want ErrInvalidVector", err)
	}
}

func TestDecodeVectorInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil data", nil},
		{"short data", []byte{1, 2}},
		{"negative length", []byte{0xff, 0xff, 0xff, 0xff}},
		{"truncated payload", []byte{2, 0, 0, 0, 1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeVector(tt.data); err == nil {
				t.Error("DecodeVector() expected error, got nil")
			}
		})
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	metadata := map[string]any{
		"label": "laughter",
		"rms":   0.42,
		"breakdown": map[string]any{
			"pitch":  220.5,
			"voiced": true,
		},
	}

	encoded, err := EncodeMetadata(metadata)
	if err != nil {
		t.Fatalf("EncodeMetadata() error = %v", err)
	}

	decoded, err := DecodeMetadata(encoded)
	if err != nil {
		t.Fatalf("DecodeMetadata() error = %v", err)
	}

	if !reflect.DeepEqual(decoded, metadata) {
		t.Errorf("round trip = %v, want %v", decoded, metadata)
	}
}

func TestMetadataNil(t *testing.T) {
	encoded, err := EncodeMetadata(nil)
	if err != nil {
		t.Fatalf("EncodeMetadata(nil) error = %v", err)
	}
	if encoded != "" {
		t.Errorf("EncodeMetadata(nil) = %q, want empty string", encoded)
	}

	decoded, err := DecodeMetadata("")
	if err != nil {
		t.Fatalf("DecodeMetadata(\"\") error = %v", err)
	}
	if decoded != nil {
		t.Errorf("DecodeMetadata(\"\") = %v, want nil", decoded)
	}
}

func TestValidateVector(t *testing.T) {
	tests := []struct {
		name    string
		vector  []float64
		wantErr bool
	}{
		{"valid", []float64{1, 2, 3}, false},
		{"nil", nil, true},
		{"empty", []float64{}, true},
		{"NaN", []float64{1, math.NaN()}, true},
		{"positive infinity", []float64{math.Inf(1)}, true},
		{"negative infinity", []float64{math.Inf(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVector(tt.vector)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidVector) {
				t.Errorf("ValidateVector() error = %v, want ErrInvalidVector", err)
			}
		})
	}
}

func TestValidateSourceType(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		wantErr bool
	}{
		{"audio", "audio", false},
		{"with dash", "email-inbox", false},
		{"with dot", "semantic.window", false},
		{"empty", "", true},
		{"slash", "audio/raw", true},
		{"comma", "a,b", true},
		{"quote", `tag"`, true},
		{"control character", "tag\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceType(tt.tag)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSourceType(%q) error = %v, wantErr %v", tt.tag, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSourceType) {
				t.Errorf("ValidateSourceType(%q) error = %v, want ErrInvalidSourceType", tt.tag, err)
			}
		})
	}
}

// Package encoding converts vectors and metadata between their Go and SQLite
// column representations, and validates caller input before it reaches disk.
package encoding

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidVector is returned when a vector is invalid
var ErrInvalidVector = errors.New("invalid vector")

// ErrInvalidSourceType is returned when a source type tag is invalid
var ErrInvalidSourceType = errors.New("invalid source type")

// reserved characters that may not appear in a source type tag; they collide
// with path, query and CSV conventions used by callers
const reservedTagChars = "/\\,;|\"'"

// EncodeVector encodes a float64 vector to a little-endian byte blob with an
// int32 length prefix.
func EncodeVector(vector []float64) ([]byte, error) {
	if vector == nil {
		return nil, ErrInvalidVector
	}

	if len(vector) > math.MaxInt32 {
		return nil, fmt.Errorf("vector too large: %d elements", len(vector))
	}

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, int32(len(vector))); err != nil {
		return nil, fmt.Errorf("failed to encode vector length: %w", err)
	}
	if err := binary.Write(buf, binary.LittleEndian, vector); err != nil {
		return nil, fmt.Errorf("failed to encode vector values: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeVector decodes a byte blob back to a float64 vector.
func DecodeVector(data []byte) ([]float64, error) {
	if len(data) < 4 {
		return nil, ErrInvalidVector
	}

	buf := bytes.NewReader(data)

	var length int32
	if err := binary.Read(buf, binary.LittleEndian, &length); err != nil {
		return nil, fmt.Errorf("failed to decode vector length: %w", err)
	}
	if length < 0 {
		return nil, ErrInvalidVector
	}
	if length == 0 {
		return []float64{}, nil
	}

	if buf.Len() < int(length)*8 {
		return nil, ErrInvalidVector
	}

	vector := make([]float64, length)
	if err := binary.Read(buf, binary.LittleEndian, vector); err != nil {
		return nil, fmt.Errorf("failed to decode vector values: %w", err)
	}

	return vector, nil
}

// EncodeMetadata encodes metadata to a JSON string. The structure is opaque to
// the store; it only has to survive a round trip.
func EncodeMetadata(metadata map[string]any) (string, error) {
	if metadata == nil {
		return "", nil
	}

	data, err := json.Marshal(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	return string(data), nil
}

// DecodeMetadata decodes a JSON string back to metadata.
func DecodeMetadata(jsonStr string) (map[string]any, error) {
	if jsonStr == "" {
		return nil, nil
	}

	var metadata map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	return metadata, nil
}

// ValidateVector checks that a vector is non-empty and contains only finite
// values.
func ValidateVector(vector []float64) error {
	if len(vector) == 0 {
		return ErrInvalidVector
	}

	for i, val := range vector {
		if math.IsNaN(val) {
			return fmt.Errorf("%w: NaN at index %d", ErrInvalidVector, i)
		}
		if math.IsInf(val, 0) {
			return fmt.Errorf("%w: infinity at index %d", ErrInvalidVector, i)
		}
	}

	return nil
}

// ValidateSourceType checks that a source type tag is non-empty and free of
// reserved characters. The tag set is open: new modalities arrive without a
// schema change, so this is the only gate.
func ValidateSourceType(tag string) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrInvalidSourceType)
	}

	if strings.ContainsAny(tag, reservedTagChars) {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidSourceType, tag)
	}

	for _, r := range tag {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %q contains a control character", ErrInvalidSourceType, tag)
		}
	}

	return nil
}

package asc

import (
	"encoding/binary"
	"fmt"

	"github.com/wippyai/asc-runtime/errors"
)

// Value is a primitive with the same fixed-width little-endian
// representation on both sides of the boundary.
type Value interface {
	~bool | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64 |
		~float32 | ~float64
}

// SizeOfValue returns the encoded width of V in bytes.
func SizeOfValue[V Value]() uint32 {
	var v V
	return uint32(binary.Size(v))
}

// EncodeValue returns the little-endian bytes of v. Booleans encode as a
// single 0 or 1 byte.
func EncodeValue[V Value](v V) []byte {
	// fixed-size values cannot fail to encode
	b, _ := binary.Append(make([]byte, 0, SizeOfValue[V]()), binary.LittleEndian, v)
	return b
}

// DecodeValue reconstructs a V from exactly SizeOfValue[V]() bytes.
// Any nonzero byte decodes as true for booleans.
func DecodeValue[V Value](b []byte) (V, error) {
	var v V
	if err := decodeFixed(b, &v); err != nil {
		return v, err
	}
	return v, nil
}

func decodeFixed[T any](b []byte, v *T) error {
	size := binary.Size(*v)
	if len(b) != size {
		return errors.Deterministic(errors.SizeMismatch(errors.PhaseDecode, fmt.Sprintf("%T", *v), size, len(b)))
	}
	// length was checked above
	_, _ = binary.Decode(b, binary.LittleEndian, v)
	return nil
}

// isValue reports whether v is one of the unnamed primitive types handled
// without a Type implementation.
func isValue(v any) bool {
	switch v.(type) {
	case bool, uint8, uint16, uint32, uint64, int8, int16, int32, int64, float32, float64:
		return true
	}
	return false
}

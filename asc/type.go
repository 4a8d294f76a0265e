package asc

import (
	"encoding/binary"
	"fmt"

	"github.com/wippyai/asc-runtime/errors"
)

// Marshaler produces the exact guest memory layout of a host value.
type Marshaler interface {
	ToAscBytes() ([]byte, error)
}

// Unmarshaler rebuilds a host value from its guest memory layout.
// It is implemented on the pointer receiver.
type Unmarshaler interface {
	FromAscBytes(b []byte) error
}

// Type is a host type with a direct correspondence to a guest type.
//
// Unnamed primitives (uint32, bool, float64, ...) are handled without a Type
// implementation. Named types and structs implement Type, laying out their
// fields without padding.
type Type interface {
	Marshaler
	Unmarshaler
}

// Managed is implemented by types whose guest instances carry the runtime
// header. AscTypeIndex is called on the zero value and must not depend on it.
type Managed interface {
	AscTypeIndex() TypeIndex
}

// Sizer reports the fixed width of a non-managed composite. Types without
// it are measured with encoding/binary.
type Sizer interface {
	AscSize() uint32
}

// typeIndexOf reports the type index T declares, if T is managed.
func typeIndexOf[T any]() (TypeIndex, bool) {
	var zero T
	if m, ok := any(&zero).(Managed); ok {
		return m.AscTypeIndex(), true
	}
	return 0, false
}

func encode[T any](v T) ([]byte, error) {
	if m, ok := any(&v).(Marshaler); ok {
		return m.ToAscBytes()
	}
	if isValue(v) {
		// fixed-size values cannot fail to encode
		b, _ := binary.Append(nil, binary.LittleEndian, v)
		return b, nil
	}
	return nil, errors.Deterministic(errors.Unsupported(errors.PhaseEncode, fmt.Sprintf("%T", v), "no guest layout"))
}

func decode[T any](b []byte) (T, error) {
	var v T
	if u, ok := any(&v).(Unmarshaler); ok {
		if err := u.FromAscBytes(b); err != nil {
			return v, err
		}
		return v, nil
	}
	if !isValue(v) {
		return v, errors.Deterministic(errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("%T", v), "no guest layout"))
	}
	if err := decodeFixed(b, &v); err != nil {
		return v, err
	}
	return v, nil
}

// sizeOf returns the content size of the object at p: the header's rtSize
// for managed types, the fixed width otherwise.
func sizeOf[T any](p Ptr[T], h Heap) (uint32, error) {
	var zero T
	if _, ok := any(&zero).(Managed); ok {
		hdr, err := ReadHeader(h, p.offset)
		if err != nil {
			return 0, err
		}
		return hdr.RTSize, nil
	}
	if s, ok := any(&zero).(Sizer); ok {
		return s.AscSize(), nil
	}
	if n := binary.Size(zero); n >= 0 {
		return uint32(n), nil
	}
	return 0, errors.Deterministic(errors.Unsupported(errors.PhaseDecode, fmt.Sprintf("%T", zero), "size is not fixed"))
}

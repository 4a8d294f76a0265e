package asc

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/wippyai/asc-runtime/errors"
)

// Array is the legacy header-less array layout: a u32 element count
// followed by the elements.
type Array[V Value] struct {
	Elems []V
}

func (a Array[V]) ToAscBytes() ([]byte, error) {
	if uint64(len(a.Elems)) > math.MaxUint32 {
		return nil, errors.Deterministic(errors.Overflow(errors.PhaseEncode, len(a.Elems), "u32 length"))
	}
	b := make([]byte, 0, 4+int(SizeOfValue[V]())*len(a.Elems))
	b = binary.LittleEndian.AppendUint32(b, uint32(len(a.Elems)))
	for _, e := range a.Elems {
		b = append(b, EncodeValue(e)...)
	}
	return b, nil
}

func (a *Array[V]) FromAscBytes(b []byte) error {
	if len(b) < 4 {
		return errors.Deterministic(errors.SizeMismatch(errors.PhaseDecode, fmt.Sprintf("%T", *a), 4, len(b)))
	}
	n := binary.LittleEndian.Uint32(b)
	width := SizeOfValue[V]()
	want := 4 + uint64(n)*uint64(width)
	if uint64(len(b)) != want {
		return errors.Deterministic(errors.SizeMismatch(errors.PhaseDecode, fmt.Sprintf("%T", *a), int(want), len(b)))
	}
	elems := make([]V, n)
	for i := range elems {
		off := 4 + uint32(i)*width
		v, err := DecodeValue[V](b[off : off+width])
		if err != nil {
			return err
		}
		elems[i] = v
	}
	a.Elems = elems
	return nil
}

// NewArray allocates vs in the legacy array layout.
func NewArray[V Value](h Heap, vs []V) (Ptr[Array[V]], error) {
	return Alloc(h, Array[V]{Elems: vs})
}

// ReadArray reads the length prefix at p and then the elements after it.
func ReadArray[V Value](h Heap, p Ptr[Array[V]]) ([]V, error) {
	n, err := p.ReadLengthPrefix(h)
	if err != nil {
		return nil, err
	}
	size := 4 + uint64(n)*uint64(SizeOfValue[V]())
	if size > math.MaxUint32 {
		return nil, errors.Deterministic(errors.Overflow(errors.PhaseDecode, size, "u32 object size"))
	}
	b, err := h.Get(p.WasmPtr(), uint32(size))
	if err != nil {
		return nil, err
	}
	var a Array[V]
	if err := a.FromAscBytes(b); err != nil {
		return nil, err
	}
	return a.Elems, nil
}

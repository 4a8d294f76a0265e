package asc

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/asc-runtime/errors"
)

// Ptr is an offset into guest memory addressing the content of a T.
// The type parameter exists only at compile time; a Ptr is 4 bytes on the
// wire and owns nothing.
type Ptr[T any] struct {
	offset uint32
}

// Opaque is the content type of an erased pointer.
type Opaque struct{}

// NewPtr wraps a raw guest offset. The offset is not validated.
func NewPtr[T any](offset uint32) Ptr[T] {
	return Ptr[T]{offset: offset}
}

// Null returns the guest's null for T.
func Null[T any]() Ptr[T] {
	return Ptr[T]{}
}

// WasmPtr returns the raw offset, as passed to guest functions.
func (p Ptr[T]) WasmPtr() uint32 {
	return p.offset
}

// IsNull is true for nullable fields such as `string | null` holding null.
func (p Ptr[T]) IsNull() bool {
	return p.offset == 0
}

// ToPayload widens the offset for enum payloads shared with 64-bit primitives.
func (p Ptr[T]) ToPayload() uint64 {
	return uint64(p.offset)
}

// Erase drops the content type.
func (p Ptr[T]) Erase() Ptr[Opaque] {
	return Ptr[Opaque]{offset: p.offset}
}

func (p Ptr[T]) String() string {
	return strconv.FormatUint(uint64(p.offset), 10)
}

// Read decodes the T at p.
func (p Ptr[T]) Read(h Heap) (T, error) {
	size, err := sizeOf(p, h)
	if err != nil {
		var zero T
		return zero, err
	}
	b, err := h.Get(p.offset, size)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode[T](b)
}

// ReadLengthPrefix reads the u32 at p. Arrays and strings of the legacy
// layout store their length there.
func (p Ptr[T]) ReadLengthPrefix(h Heap) (uint32, error) {
	b, err := h.Get(p.offset, 4)
	if err != nil {
		return 0, err
	}
	return DecodeValue[uint32](b)
}

func (p Ptr[T]) ToAscBytes() ([]byte, error) {
	return EncodeValue(p.offset), nil
}

func (p *Ptr[T]) FromAscBytes(b []byte) error {
	offset, err := DecodeValue[uint32](b)
	if err != nil {
		return err
	}
	p.offset = offset
	return nil
}

func (Ptr[T]) AscSize() uint32 { return 4 }

// Alloc places v in guest memory and returns a pointer to its content.
//
// Header and content are assembled on the host and handed to Heap.RawNew
// in a single call. For managed types the header carries the runtime id
// from Heap.TypeID and the content length.
func Alloc[T any](h Heap, v T) (Ptr[T], error) {
	content, err := encode(v)
	if err != nil {
		return Ptr[T]{}, err
	}
	if uint64(len(content)) > math.MaxUint32-HeaderSize {
		return Ptr[T]{}, errors.Deterministic(errors.Overflow(errors.PhaseAlloc, len(content), "u32 object size"))
	}

	var header []byte
	idx, managed := typeIndexOf[T]()
	if managed {
		rtID, err := h.TypeID(uint32(idx))
		if err != nil {
			return Ptr[T]{}, err
		}
		header = NewHeader(rtID, uint32(len(content))).Bytes()
	}

	buf := make([]byte, 0, len(header)+len(content))
	buf = append(buf, header...)
	buf = append(buf, content...)

	start, err := h.RawNew(buf)
	if err != nil {
		return Ptr[T]{}, err
	}

	p := NewPtr[T](start + uint32(len(header)))
	if ce := Logger().Check(zap.DebugLevel, "allocated guest object"); ce != nil {
		ce.Write(
			zap.String("type", fmt.Sprintf("%T", v)),
			zap.Bool("managed", managed),
			zap.Uint32("start", start),
			zap.Stringer("ptr", p),
			zap.Int("size", len(buf)),
		)
	}
	return p, nil
}

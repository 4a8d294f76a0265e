// Package heaptest provides an in-memory Heap for testing code that
// marshals values into guest memory.
package heaptest

import (
	"github.com/wippyai/asc-runtime/errors"
)

// Range is a recorded Get request.
type Range struct {
	Offset uint32
	Length uint32
}

// Heap is a growable byte slice standing in for guest linear memory.
// Objects are placed back to back starting at the configured offset.
type Heap struct {
	// TypeIDs maps type indexes to runtime ids. Nil means identity.
	TypeIDs map[uint32]uint32

	// Limit caps the memory size; RawNew past it fails like an
	// out-of-memory guest. Zero means unlimited.
	Limit uint32

	// News holds a copy of every RawNew payload, in call order.
	News [][]byte

	// Gets holds every Get request, in call order.
	Gets []Range

	mem  []byte
	next uint32
}

// New returns a heap whose next allocation starts at next.
func New(next uint32) *Heap {
	return &Heap{
		mem:  make([]byte, next),
		next: next,
	}
}

// Get implements ascruntime.Heap.
func (h *Heap) Get(offset, length uint32) ([]byte, error) {
	h.Gets = append(h.Gets, Range{Offset: offset, Length: length})
	end := uint64(offset) + uint64(length)
	if end > uint64(len(h.mem)) {
		return nil, errors.Deterministic(errors.OutOfBounds(errors.PhaseDecode, offset, length, uint32(len(h.mem))))
	}
	out := make([]byte, length)
	copy(out, h.mem[offset:end])
	return out, nil
}

// RawNew implements ascruntime.Heap.
func (h *Heap) RawNew(data []byte) (uint32, error) {
	end := uint64(h.next) + uint64(len(data))
	if h.Limit != 0 && end > uint64(h.Limit) {
		return 0, errors.AllocationFailed(errors.PhaseAlloc, uint32(len(data)), nil)
	}
	h.News = append(h.News, append([]byte(nil), data...))

	start := h.next
	if end > uint64(len(h.mem)) {
		h.mem = append(h.mem, make([]byte, int(end)-len(h.mem))...)
	}
	copy(h.mem[start:], data)
	h.next = uint32(end)
	return start, nil
}

// TypeID implements ascruntime.Heap.
func (h *Heap) TypeID(index uint32) (uint32, error) {
	if h.TypeIDs == nil {
		return index, nil
	}
	id, ok := h.TypeIDs[index]
	if !ok {
		return 0, errors.Deterministic(errors.New(errors.PhaseAlloc, errors.KindNotFound).
			Value(index).
			Detail("no runtime id for type index %d", index).
			Build())
	}
	return id, nil
}

// Poke overwrites memory at offset, growing it if needed.
func (h *Heap) Poke(offset uint32, data []byte) {
	end := int(offset) + len(data)
	if end > len(h.mem) {
		h.mem = append(h.mem, make([]byte, end-len(h.mem))...)
	}
	copy(h.mem[offset:], data)
}

// Peek returns a copy of memory without recording a Get.
func (h *Heap) Peek(offset, length uint32) []byte {
	out := make([]byte, length)
	copy(out, h.mem[offset:])
	return out
}

// Next returns the offset of the next allocation.
func (h *Heap) Next() uint32 {
	return h.next
}

// Reset clears the recorded calls.
func (h *Heap) Reset() {
	h.News = nil
	h.Gets = nil
}

package engine

import (
	"math"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

// allocAlign is the alignment of every object placed by RawNew.
const allocAlign = 8

type linearMemory interface {
	ascruntime.Memory
	ascruntime.MemorySizer
}

// TypeIDFunc resolves a type index to a runtime type id.
type TypeIDFunc func(index uint32) (uint32, error)

// Heap implements ascruntime.Heap over a guest instance's linear memory.
type Heap struct {
	mem    linearMemory
	alloc  ascruntime.Allocator
	typeID TypeIDFunc
}

// NewHeap builds a heap from its parts. A nil allocator makes the heap
// read-only; a nil typeID maps every index to itself.
func NewHeap(mem ascruntime.Memory, alloc ascruntime.Allocator, typeID TypeIDFunc) *Heap {
	h := &Heap{alloc: alloc, typeID: typeID}
	if lm, ok := mem.(linearMemory); ok {
		h.mem = lm
	} else {
		h.mem = unsized{mem}
	}
	return h
}

// Get copies length bytes starting at offset out of guest memory.
func (h *Heap) Get(offset, length uint32) ([]byte, error) {
	data, err := h.mem.Read(offset, length)
	if err != nil {
		return nil, errors.Deterministic(err)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// RawNew allocates room for data and copies it into guest memory.
func (h *Heap) RawNew(data []byte) (uint32, error) {
	if h.alloc == nil {
		return 0, errors.NotInitialized(errors.PhaseAlloc, "allocator")
	}
	if uint64(len(data)) > math.MaxUint32 {
		return 0, errors.Overflow(errors.PhaseAlloc, len(data), "u32 allocation size")
	}
	size := uint32(len(data))

	ptr, err := h.alloc.Alloc(size, allocAlign)
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseAlloc, size, err)
	}
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseAlloc, size, nil)
	}
	if err := h.mem.Write(ptr, data); err != nil {
		// the allocator handed out memory the guest does not have
		return 0, errors.Deterministic(err)
	}
	return ptr, nil
}

// TypeID resolves index through the configured source.
func (h *Heap) TypeID(index uint32) (uint32, error) {
	if h.typeID == nil {
		return index, nil
	}
	return h.typeID(index)
}

// Size returns the current size of guest memory in bytes.
func (h *Heap) Size() uint32 {
	return h.mem.Size()
}

// unsized lets memories without a Size method back a Heap.
type unsized struct {
	ascruntime.Memory
}

func (unsized) Size() uint32 { return 0 }

// tableTypeIDs resolves type ids from a fixed table.
func tableTypeIDs(table map[uint32]uint32) TypeIDFunc {
	return func(index uint32) (uint32, error) {
		id, ok := table[index]
		if !ok {
			return 0, errors.Deterministic(errors.New(errors.PhaseAlloc, errors.KindNotFound).
				Value(index).
				Detail("no runtime type id for index %d", index).
				Build())
		}
		return id, nil
	}
}

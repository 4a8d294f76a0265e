package ascruntime

// Heap is the guest memory a marshalling operation runs against.
//
// Get must fail deterministically when the range is out of bounds.
// RawNew may fail non-deterministically (out of memory); implementations
// must not report such failures as deterministic errors.
type Heap interface {
	// Get returns exactly length bytes starting at offset.
	Get(offset, length uint32) ([]byte, error)

	// RawNew places data in guest memory and returns its start offset.
	RawNew(data []byte) (uint32, error)

	// TypeID resolves a logical type index to the runtime type id the
	// guest module was compiled with.
	TypeID(index uint32) (uint32, error)
}

// Memory represents WASM linear memory
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
}

// MemorySizer provides the current size of WASM linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Allocator allocates memory in WASM linear memory
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}

package engine

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/asc-runtime/errors"
)

// memory adapts wazero api.Memory to ascruntime.Memory.
type memory struct {
	mem api.Memory
}

func wrapMemory(mem api.Memory) *memory {
	if mem == nil {
		return nil
	}
	return &memory{mem: mem}
}

// Read returns a view of guest memory, valid until the next write or grow.
func (m *memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, errors.OutOfBounds(errors.PhaseDecode, offset, length, m.mem.Size())
	}
	return data, nil
}

// Write writes bytes to memory.
func (m *memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return errors.OutOfBounds(errors.PhaseAlloc, offset, uint32(len(data)), m.mem.Size())
	}
	return nil
}

// Size returns the memory size in bytes.
func (m *memory) Size() uint32 {
	return m.mem.Size()
}

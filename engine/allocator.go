package engine

import (
	"context"
	"math"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

const (
	// DefaultMinArenaSize is the smallest block an ArenaAllocator reserves.
	DefaultMinArenaSize = 10_000

	pageSize = 65536

	// bump allocations never start below this, keeping 0 free as null
	minBumpStart = 8
)

func alignUp(v, align uint32) uint32 {
	if align <= 1 {
		return v
	}
	return (v + align - 1) &^ (align - 1)
}

// GuestAllocator reserves memory by calling the guest's allocate(size) export.
type GuestAllocator struct {
	Ctx context.Context
	Fn  api.Function
}

// NewGuestAllocator wraps fn, which must have the signature (i32) -> i32.
func NewGuestAllocator(ctx context.Context, fn api.Function) *GuestAllocator {
	return &GuestAllocator{Ctx: ctx, Fn: fn}
}

// Alloc calls the guest allocator. Alignment is left to the guest.
func (a *GuestAllocator) Alloc(size, _ uint32) (uint32, error) {
	results, err := a.Fn.Call(a.Ctx, uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseAlloc, errors.KindAllocation, err, "call guest allocator")
	}
	if len(results) == 0 {
		return 0, errors.New(errors.PhaseAlloc, errors.KindAllocation).Detail("guest allocator returned no result").Build()
	}
	return api.DecodeU32(results[0]), nil
}

// Free is a no-op: the guest reclaims its own memory.
func (a *GuestAllocator) Free(ptr, size, align uint32) {}

// ArenaAllocator carves allocations out of large blocks reserved from a
// parent allocator.
type ArenaAllocator struct {
	parent  ascruntime.Allocator
	minSize uint32
	next    uint32
	free    uint32
}

// NewArenaAllocator reserves blocks of at least minSize bytes from parent.
// Zero means DefaultMinArenaSize.
func NewArenaAllocator(parent ascruntime.Allocator, minSize uint32) *ArenaAllocator {
	if minSize == 0 {
		minSize = DefaultMinArenaSize
	}
	return &ArenaAllocator{parent: parent, minSize: minSize}
}

// Alloc returns size bytes aligned to align, reserving a new arena when the
// current one cannot fit them.
func (a *ArenaAllocator) Alloc(size, align uint32) (uint32, error) {
	align = max(align, 1)
	pad := alignUp(a.next, align) - a.next
	if a.next == 0 || uint64(size)+uint64(pad) > uint64(a.free) {
		want := uint64(size) + uint64(align) - 1
		if want > math.MaxUint32 {
			return 0, errors.Overflow(errors.PhaseAlloc, want, "u32 arena size")
		}
		arena := max(uint32(want), a.minSize)
		start, err := a.parent.Alloc(arena, align)
		if err != nil {
			return 0, err
		}
		if start == 0 {
			return 0, errors.AllocationFailed(errors.PhaseAlloc, arena, nil)
		}
		Logger().Debug("reserved arena", zap.Uint32("start", start), zap.Uint32("size", arena))
		a.next, a.free = start, arena
		pad = alignUp(start, align) - start
	}
	ptr := a.next + pad
	a.next = ptr + size
	a.free -= pad + size
	return ptr, nil
}

// Free is a no-op: arena memory lives as long as the instance.
func (a *ArenaAllocator) Free(ptr, size, align uint32) {}

// BumpAllocator places objects past the end of the guest's memory, growing
// it as needed. It is used for guests without an allocator export.
type BumpAllocator struct {
	mem  api.Memory
	next uint32
	end  uint32
}

// NewBumpAllocator allocates from the end of mem.
func NewBumpAllocator(mem api.Memory) *BumpAllocator {
	return &BumpAllocator{mem: mem}
}

// Alloc returns size bytes aligned to align. If the guest has grown memory
// since the last call, allocation restarts past the guest's new end.
func (b *BumpAllocator) Alloc(size, align uint32) (uint32, error) {
	if cur := b.mem.Size(); cur != b.end {
		b.next, b.end = cur, cur
	}
	start := alignUp(max(b.next, minBumpStart), align)
	need := uint64(start) + uint64(size)
	if need > uint64(b.end) {
		pages := (need - uint64(b.end) + pageSize - 1) / pageSize
		if pages > math.MaxUint32 {
			return 0, errors.AllocationFailed(errors.PhaseAlloc, size, nil)
		}
		if _, ok := b.mem.Grow(uint32(pages)); !ok {
			return 0, errors.New(errors.PhaseAlloc, errors.KindAllocation).
				Detail("grow memory by %d pages", pages).
				Build()
		}
		b.end = b.mem.Size()
		Logger().Debug("grew guest memory", zap.Uint64("pages", pages), zap.Uint32("size", b.end))
	}
	b.next = uint32(need)
	return start, nil
}

// Free is a no-op.
func (b *BumpAllocator) Free(ptr, size, align uint32) {}

package heaptest

import (
	"bytes"
	"testing"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

var _ ascruntime.Heap = (*Heap)(nil)

func TestHeap_RawNewAndGet(t *testing.T) {
	h := New(100)

	p1, err := h.RawNew([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("RawNew: %v", err)
	}
	p2, err := h.RawNew([]byte{4, 5})
	if err != nil {
		t.Fatalf("RawNew: %v", err)
	}
	if p1 != 100 || p2 != 103 {
		t.Errorf("offsets = %d, %d; want 100, 103", p1, p2)
	}
	if h.Next() != 105 {
		t.Errorf("Next() = %d, want 105", h.Next())
	}

	got, err := h.Get(101, 3)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, []byte{2, 3, 4}) {
		t.Errorf("Get = %v, want [2 3 4]", got)
	}
	if len(h.News) != 2 || len(h.Gets) != 1 {
		t.Errorf("recorded %d news, %d gets", len(h.News), len(h.Gets))
	}
}

func TestHeap_GetOutOfBounds(t *testing.T) {
	h := New(16)
	_, err := h.Get(10, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.IsDeterministic(err) {
		t.Errorf("out of bounds read must be deterministic: %v", err)
	}
}

func TestHeap_Limit(t *testing.T) {
	h := New(8)
	h.Limit = 10
	_, err := h.RawNew([]byte{1, 2, 3})
	if err == nil {
		t.Fatal("expected allocation failure")
	}
	if errors.IsDeterministic(err) {
		t.Error("allocation failure must not be deterministic")
	}
	if len(h.News) != 0 {
		t.Error("failed allocation should not be recorded")
	}
}

func TestHeap_TypeID(t *testing.T) {
	h := New(0)
	if id, _ := h.TypeID(3); id != 3 {
		t.Errorf("identity TypeID(3) = %d", id)
	}

	h.TypeIDs = map[uint32]uint32{0: 1}
	if id, err := h.TypeID(0); err != nil || id != 1 {
		t.Errorf("TypeID(0) = %d, %v; want 1", id, err)
	}
	if _, err := h.TypeID(5); !errors.IsDeterministic(err) {
		t.Errorf("unknown index should fail deterministically, got %v", err)
	}
}

func TestHeap_PokePeek(t *testing.T) {
	h := New(4)
	h.Poke(6, []byte{9, 9})
	if got := h.Peek(4, 4); !bytes.Equal(got, []byte{0, 0, 9, 9}) {
		t.Errorf("Peek = %v", got)
	}
	if len(h.Gets) != 0 {
		t.Error("Peek must not be recorded")
	}
}

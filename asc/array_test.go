package asc

import (
	"bytes"
	"testing"

	"github.com/wippyai/asc-runtime/errors"
	"github.com/wippyai/asc-runtime/heaptest"
)

func TestArray_Layout(t *testing.T) {
	heap := heaptest.New(40)

	p, err := NewArray(heap, []uint16{1, 0x0203})
	if err != nil {
		t.Fatal(err)
	}
	if p.WasmPtr() != 40 {
		t.Errorf("ptr = %d, want 40 (no header)", p.WasmPtr())
	}
	want := []byte{2, 0, 0, 0, 1, 0, 3, 2}
	if !bytes.Equal(heap.News[0], want) {
		t.Errorf("payload = %v, want %v", heap.News[0], want)
	}

	n, err := p.ReadLengthPrefix(heap)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("length prefix = %d", n)
	}
}

func TestArray_RoundTrip(t *testing.T) {
	heap := heaptest.New(4)

	in := []float64{1.5, -2, 1e300}
	p, err := NewArray(heap, in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ReadArray(heap, p)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %v", got)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("[%d] = %v, want %v", i, got[i], in[i])
		}
	}

	empty, err := NewArray[int32](heap, nil)
	if err != nil {
		t.Fatal(err)
	}
	elems, err := ReadArray(heap, empty)
	if err != nil || len(elems) != 0 {
		t.Errorf("empty array: %v, %v", elems, err)
	}
}

func TestArray_CorruptLength(t *testing.T) {
	heap := heaptest.New(0)
	heap.Poke(8, []byte{0xff, 0xff, 0xff, 0x7f, 1, 2})

	_, err := ReadArray(heap, NewPtr[Array[uint64]](8))
	if !errors.IsDeterministic(err) {
		t.Errorf("expected deterministic error, got %v", err)
	}
}

func TestArray_FromAscBytes(t *testing.T) {
	var a Array[uint32]
	if err := a.FromAscBytes([]byte{1, 0}); !errors.IsDeterministic(err) {
		t.Errorf("short prefix: %v", err)
	}
	if err := a.FromAscBytes([]byte{2, 0, 0, 0, 1, 0, 0, 0}); !errors.IsDeterministic(err) {
		t.Errorf("truncated elements: %v", err)
	}
	if err := a.FromAscBytes([]byte{1, 0, 0, 0, 9, 0, 0, 0}); err != nil || len(a.Elems) != 1 || a.Elems[0] != 9 {
		t.Errorf("got %v, %v", a.Elems, err)
	}
}

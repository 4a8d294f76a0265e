// Package ascruntime marshals Go values to and from the linear memory of
// AssemblyScript guest modules.
//
// Guest objects of managed types carry a 20-byte runtime header in front
// of their content. The host writes that header itself when it allocates,
// so objects created from Go are indistinguishable from objects the guest
// compiler would have produced.
//
// # Architecture Overview
//
//	ascruntime/          Root package with the Heap, Memory and Allocator contracts
//	├── asc/             Primitive codecs, runtime header, typed pointers, strings
//	├── engine/          wazero integration: instances, guest heap, allocators
//	├── heaptest/        In-memory Heap for tests
//	├── errors/          Structured error types, deterministic classification
//	└── cmd/ascdump/     Inspect objects inside a running guest
//
// # Quick Start
//
//	eng, err := engine.New(ctx, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	inst, err := eng.Instantiate(ctx, wasmBytes, "mapping")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close(ctx)
//
//	ptr, err := asc.NewString(inst.Heap(), "hello")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := inst.Call(ctx, "handle", uint64(ptr.WasmPtr()))
//
// # Memory Model
//
// The host only allocates, it never collects. Header words used for GC
// bookkeeping are always written as zero.
//
// # Thread Safety
//
// Nothing in this module locks. A Heap belongs to one guest instance and
// must not be used from several goroutines at once.
package ascruntime

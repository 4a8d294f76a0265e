// Package asc reads and writes AssemblyScript objects in guest linear memory.
//
// # Layers
//
//	Value codecs   EncodeValue / DecodeValue for fixed-width primitives
//	Type           ToAscBytes / FromAscBytes for composite host types
//	Ptr[T]         32-bit content offset, typed at compile time only
//	Heap           the guest memory contract (see ascruntime.Heap)
//
// # Object Layout
//
// Instances of managed types are preceded by a 20-byte header of five
// little-endian u32 words:
//
//	offset-20  mmInfo    always 0 (host allocated)
//	offset-16  gcInfo    always 0
//	offset-12  gcInfo2   always 0
//	offset-8   rtId      runtime type id, resolved via Heap.TypeID
//	offset-4   rtSize    content length in bytes
//	offset     content
//
// A Ptr always addresses the content, never the header. Offset 0 is null.
// Plain values have no header and their size is their native width.
//
// # Sizes
//
// The size of a managed object is read from rtSize in guest memory, not
// from the host type. A guest that rewrites rtSize changes what Read returns.
//
// # Errors
//
// Malformed bytes never panic. Every failure that depends only on guest
// memory contents is returned as an errors.DeterministicError; failures of
// Heap.RawNew are passed through untouched.
package asc

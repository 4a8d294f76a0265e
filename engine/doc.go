// Package engine runs AssemblyScript guest modules on wazero and exposes
// their linear memory as an ascruntime.Heap.
//
// # Architecture
//
//	Engine    - owns a wazero runtime and the host imports guests expect
//	Instance  - an instantiated guest module with its Heap
//	Heap      - Get/RawNew/TypeID over the instance's memory
//
// # Allocation
//
// Objects are placed with an Allocator chosen per instance:
//
//	guest exports "allocate"  ArenaAllocator over GuestAllocator
//	otherwise                 BumpAllocator growing memory past the guest's data
//
// The arena reserves at least Config.MinArenaSize bytes per guest call so
// that small objects do not each cost a call into the guest.
//
// # Type Ids
//
// Runtime type ids are module specific. They come from Config.TypeIDs when
// set, otherwise from the guest export "id_of_type", otherwise the index is
// used as the id.
//
// # Host Imports
//
// env.abort(message, file, line, column) reads both strings from guest
// memory, logs them and fails the call with a deterministic error.
// WASI preview1 is instantiated on first use by a module importing it.
//
// # Thread Safety
//
// Engine is safe for concurrent use. Instance and Heap are NOT thread-safe.
package engine

package engine

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
	"github.com/wippyai/asc-runtime/errors"
)

const (
	DefaultAllocateExport = "allocate"
	DefaultTypeIDExport   = "id_of_type"
)

// Config holds configuration for engine creation
type Config struct {
	// TypeIDs fixes the runtime type id of each type index, taking
	// precedence over TypeIDExport.
	TypeIDs map[uint32]uint32

	// AllocateExport names the guest export (i32) -> i32 that reserves
	// memory. Default "allocate".
	AllocateExport string

	// TypeIDExport names the guest export (i32) -> i32 mapping type
	// indexes to runtime ids. Default "id_of_type".
	TypeIDExport string

	// MemoryLimitPages sets the maximum memory per instance in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	MemoryLimitPages uint32

	// MinArenaSize is the smallest block reserved through AllocateExport.
	// 0 means DefaultMinArenaSize.
	MinArenaSize uint32
}

func (c *Config) withDefaults() Config {
	var out Config
	if c != nil {
		out = *c
	}
	if out.AllocateExport == "" {
		out.AllocateExport = DefaultAllocateExport
	}
	if out.TypeIDExport == "" {
		out.TypeIDExport = DefaultTypeIDExport
	}
	if out.MinArenaSize == 0 {
		out.MinArenaSize = DefaultMinArenaSize
	}
	return out
}

// Engine owns a wazero runtime with the host imports guests expect.
type Engine struct {
	runtime  wazero.Runtime
	cfg      Config
	wasiMu   sync.Mutex
	wasiDone bool
}

// New creates an engine. A nil cfg uses the defaults.
func New(ctx context.Context, cfg *Config) (*Engine, error) {
	c := cfg.withDefaults()

	runtimeCfg := wazero.NewRuntimeConfig()
	if c.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(c.MemoryLimitPages)
	}
	runtime := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	if err := instantiateEnv(ctx, runtime); err != nil {
		_ = runtime.Close(ctx)
		return nil, errors.Instantiation(err)
	}
	return &Engine{runtime: runtime, cfg: c}, nil
}

// Close releases the runtime and every instance created from it.
func (e *Engine) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Instantiate compiles and instantiates a guest module. The module must
// define a memory.
func (e *Engine) Instantiate(ctx context.Context, wasm []byte, name string) (*Instance, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	if importsWASI(compiled) {
		if err := e.ensureWASI(ctx); err != nil {
			_ = compiled.Close(ctx)
			return nil, errors.Instantiation(err)
		}
	}

	mod, err := e.runtime.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(name))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, errors.Instantiation(err)
	}

	mem := mod.Memory()
	if mem == nil {
		_ = mod.Close(ctx)
		_ = compiled.Close(ctx)
		return nil, errors.NotFound(errors.PhaseLoad, "memory", name)
	}

	alloc, allocKind := e.allocatorFor(ctx, mod)
	heap := NewHeap(wrapMemory(mem), alloc, e.typeIDsFor(ctx, mod))

	Logger().Debug("instantiated module",
		zap.String("name", name),
		zap.Uint32("memory_size", mem.Size()),
		zap.String("allocator", allocKind),
	)

	return &Instance{name: name, mod: mod, compiled: compiled, heap: heap}, nil
}

func (e *Engine) ensureWASI(ctx context.Context) error {
	e.wasiMu.Lock()
	defer e.wasiMu.Unlock()
	if e.wasiDone {
		return nil
	}
	if _, err := wasi_snapshot_preview1.Instantiate(ctx, e.runtime); err != nil {
		return err
	}
	e.wasiDone = true
	return nil
}

func importsWASI(compiled wazero.CompiledModule) bool {
	for _, def := range compiled.ImportedFunctions() {
		if module, _, ok := def.Import(); ok && module == wasi_snapshot_preview1.ModuleName {
			return true
		}
	}
	return false
}

func (e *Engine) allocatorFor(ctx context.Context, mod api.Module) (ascruntime.Allocator, string) {
	if fn := mod.ExportedFunction(e.cfg.AllocateExport); fn != nil && isU32ToU32(fn.Definition()) {
		return NewArenaAllocator(NewGuestAllocator(ctx, fn), e.cfg.MinArenaSize), "arena"
	}
	return NewBumpAllocator(mod.Memory()), "bump"
}

func (e *Engine) typeIDsFor(ctx context.Context, mod api.Module) TypeIDFunc {
	if e.cfg.TypeIDs != nil {
		return tableTypeIDs(e.cfg.TypeIDs)
	}
	fn := mod.ExportedFunction(e.cfg.TypeIDExport)
	if fn == nil || !isU32ToU32(fn.Definition()) {
		return nil
	}
	export := e.cfg.TypeIDExport
	return func(index uint32) (uint32, error) {
		results, err := fn.Call(ctx, uint64(index))
		if err != nil {
			// the guest's type table is fixed at compile time
			return 0, errors.Deterministic(errors.Wrap(errors.PhaseAlloc, errors.KindNotFound, err, "call "+export))
		}
		return api.DecodeU32(results[0]), nil
	}
}

func isU32ToU32(def api.FunctionDefinition) bool {
	params, results := def.ParamTypes(), def.ResultTypes()
	return len(params) == 1 && params[0] == api.ValueTypeI32 &&
		len(results) == 1 && results[0] == api.ValueTypeI32
}

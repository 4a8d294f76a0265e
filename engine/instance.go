package engine

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/asc-runtime/errors"
)

// Instance is an instantiated guest module.
type Instance struct {
	mod      api.Module
	compiled wazero.CompiledModule
	heap     *Heap
	name     string
}

// Name returns the module name given to Instantiate.
func (i *Instance) Name() string {
	return i.name
}

// Heap returns the heap over the instance's memory.
func (i *Instance) Heap() *Heap {
	return i.heap
}

// Exports lists the exported function names, sorted.
func (i *Instance) Exports() []string {
	defs := i.mod.ExportedFunctionDefinitions()
	names := make([]string, 0, len(defs))
	for name := range defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes an exported function. Deterministic failures raised by host
// imports (such as env.abort) are returned as is; any other failure is
// reported as a trap.
func (i *Instance) Call(ctx context.Context, name string, params ...uint64) ([]uint64, error) {
	fn := i.mod.ExportedFunction(name)
	if fn == nil {
		return nil, errors.NotFound(errors.PhaseRuntime, "function", name)
	}
	results, err := fn.Call(ctx, params...)
	if err != nil {
		if errors.IsDeterministic(err) {
			return nil, err
		}
		return nil, errors.Trap(name, err)
	}
	return results, nil
}

// Close closes the module and releases its compiled code.
func (i *Instance) Close(ctx context.Context) error {
	err := i.mod.Close(ctx)
	if cerr := i.compiled.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

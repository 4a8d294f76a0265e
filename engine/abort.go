package engine

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/asc-runtime/asc"
	"github.com/wippyai/asc-runtime/errors"
)

const envModule = "env"

func instantiateEnv(ctx context.Context, r wazero.Runtime) error {
	_, err := r.NewHostModuleBuilder(envModule).
		NewFunctionBuilder().
		WithFunc(abort).
		WithParameterNames("message", "file", "line", "column").
		Export("abort").
		Instantiate(ctx)
	return err
}

// abort is the guest's failed-assertion hook. It never returns: the panic
// unwinds the guest call and surfaces from Instance.Call.
func abort(_ context.Context, m api.Module, message, file, line, column uint32) {
	var msg, src string
	if mem := m.Memory(); mem != nil {
		heap := NewHeap(wrapMemory(mem), nil, nil)
		msg = readGuestString(heap, message)
		src = readGuestString(heap, file)
	}

	Logger().Error("guest aborted",
		zap.String("module", m.Name()),
		zap.String("message", msg),
		zap.String("file", src),
		zap.Uint32("line", line),
		zap.Uint32("column", column),
	)

	panic(errors.Deterministic(errors.New(errors.PhaseHost, errors.KindAbort).
		Detail("%q at %s:%d:%d", msg, src, line, column).
		Build()))
}

func readGuestString(h *Heap, ptr uint32) string {
	if ptr == 0 {
		return ""
	}
	s, err := asc.GetString(h, asc.NewPtr[asc.String](ptr))
	if err != nil {
		return fmt.Sprintf("<unreadable string at %d: %v>", ptr, err)
	}
	return s
}

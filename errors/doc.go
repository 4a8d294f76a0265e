// Package errors provides structured error types for the asc-runtime library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/AssemblyScript type names,
// and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindSizeMismatch).
//		GoType("uint32").
//		Detail("expected 4 bytes, got 3").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.SizeMismatch(errors.PhaseDecode, "uint32", 4, 3)
//	err := errors.OutOfBounds(errors.PhaseDecode, 65530, 20, 65536)
//
// # Determinism
//
// A failure that is a pure function of guest memory contents and the
// requested operation is wrapped in DeterministicError. Such failures
// reproduce identically on every execution and may be attributed to the
// guest module. Resource exhaustion and other environmental failures are
// never wrapped:
//
//	err := errors.Deterministic(errors.SizeMismatch(errors.PhaseDecode, "bool", 1, 2))
//	errors.IsDeterministic(err) // true
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

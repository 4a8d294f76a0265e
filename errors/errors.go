package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // Go to guest bytes
	PhaseDecode  Phase = "decode"  // guest bytes to Go
	PhaseAlloc   Phase = "alloc"   // placing objects in guest memory
	PhaseRuntime Phase = "runtime" // calls into the guest
	PhaseLoad    Phase = "load"    // module compilation
	PhaseHost    Phase = "host"    // host functions called by the guest
)

// Kind categorizes the error
type Kind string

const (
	KindSizeMismatch        Kind = "size_mismatch"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindInvalidData         Kind = "invalid_data"
	KindInvalidDiscriminant Kind = "invalid_discriminant"
	KindUnsupported         Kind = "unsupported"
	KindAllocation          Kind = "allocation"
	KindOverflow            Kind = "overflow"
	KindNilPointer          Kind = "nil_pointer"
	KindNotFound            Kind = "not_found"
	KindNotInitialized      Kind = "not_initialized"
	KindInvalidInput        Kind = "invalid_input"
	KindInstantiation       Kind = "instantiation"
	KindAbort               Kind = "abort"
	KindTrap                Kind = "trap"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	GoType  string
	AscType string
	Detail  string
	Path    []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.GoType != "" || e.AscType != "" {
		b.WriteString(": ")
		if e.GoType != "" && e.AscType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", asc type ")
			b.WriteString(e.AscType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("asc type ")
			b.WriteString(e.AscType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.AscType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// DeterministicError marks a failure that reproduces identically given the
// same guest memory contents and the same operation.
type DeterministicError struct {
	Cause error
}

// Deterministic wraps cause as a deterministic failure. Wrapping an error
// that is already deterministic returns it unchanged.
func Deterministic(cause error) error {
	if cause == nil {
		return nil
	}
	var d *DeterministicError
	if stderrors.As(cause, &d) {
		return cause
	}
	return &DeterministicError{Cause: cause}
}

// Deterministicf builds a deterministic failure from a formatted message.
func Deterministicf(phase Phase, kind Kind, format string, args ...any) error {
	return &DeterministicError{Cause: New(phase, kind).Detail(format, args...).Build()}
}

// IsDeterministic reports whether err, or any error it wraps, is deterministic.
func IsDeterministic(err error) bool {
	var d *DeterministicError
	return stderrors.As(err, &d)
}

// Error returns the message of the underlying cause.
func (e *DeterministicError) Error() string {
	if e.Cause == nil {
		return "deterministic error"
	}
	return e.Cause.Error()
}

// Unwrap returns the underlying error
func (e *DeterministicError) Unwrap() error {
	return e.Cause
}

// Is matches any other DeterministicError.
func (e *DeterministicError) Is(target error) bool {
	_, ok := target.(*DeterministicError)
	return ok
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// AscType sets the guest type name
func (b *Builder) AscType(t string) *Builder {
	b.err.AscType = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// SizeMismatch creates an error for a byte slice whose length does not
// match the width of the type being decoded
func SizeMismatch(phase Phase, goType string, expected, got int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindSizeMismatch,
		GoType: goType,
		Detail: fmt.Sprintf("expected %d bytes, got %d", expected, got),
		Value:  got,
	}
}

// OutOfBounds creates an error for a memory range outside guest memory
func OutOfBounds(phase Phase, offset, length, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("range [%d, +%d) out of bounds (memory size %d)", offset, length, size),
		Value:  offset,
	}
}

// InvalidDiscriminant creates an invalid discriminant error for enums
func InvalidDiscriminant(phase Phase, ascType string, disc uint32) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidDiscriminant,
		AscType: ascType,
		Detail:  fmt.Sprintf("value %d is out of range", disc),
		Value:   disc,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
		Cause:  cause,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, goType, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		GoType: goType,
		Detail: what,
	}
}

// NilPointer creates a null pointer error
func NilPointer(phase Phase, ascType string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindNilPointer,
		AscType: ascType,
		Detail:  "null pointer",
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, target string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, target),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, ascType, detail string) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindInvalidData,
		AscType: ascType,
		Detail:  detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// NotInitialized creates a not-initialized error for missing module/instance
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Instantiation creates an instantiation error
func Instantiation(cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindInstantiation,
		Detail: "instantiate module",
		Cause:  cause,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// Trap creates an error for a guest call that failed
func Trap(function string, cause error) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindTrap,
		Detail: fmt.Sprintf("call %s", function),
		Cause:  cause,
	}
}

package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:   PhaseDecode,
				Kind:    KindSizeMismatch,
				Path:    []string{"entity", "id"},
				GoType:  "uint32",
				AscType: "u32",
				Detail:  "expected 4 bytes, got 3",
			},
			contains: []string{"[decode]", "size_mismatch", "entity.id", "uint32", "u32", "expected 4 bytes"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "asc type only",
			err: &Error{
				Phase:   PhaseDecode,
				Kind:    KindInvalidDiscriminant,
				AscType: "TypeIndex",
				Detail:  "value 7 is out of range",
			},
			contains: []string{"asc type TypeIndex", " - value 7"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseAlloc,
				Kind:   KindAllocation,
				Detail: "memory full",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[alloc]", "allocation", "memory full", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseDecode,
		Kind:  KindSizeMismatch,
		Path:  []string{"foo"},
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindSizeMismatch}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseEncode, Kind: KindSizeMismatch}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseDecode, Kind: KindOutOfBounds}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindSizeMismatch}
	if !errors.Is(Deterministic(err), target) {
		t.Error("errors.Is should see through DeterministicError")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidData).
		Path("string", "content").
		GoType("asc.String").
		AscType("String").
		Value(3).
		Cause(cause).
		Detail("odd length %d", 3).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidData {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidData)
	}
	if len(err.Path) != 2 || err.Path[0] != "string" || err.Path[1] != "content" {
		t.Errorf("Path = %v, want [string content]", err.Path)
	}
	if err.GoType != "asc.String" {
		t.Errorf("GoType = %v, want 'asc.String'", err.GoType)
	}
	if err.AscType != "String" {
		t.Errorf("AscType = %v, want 'String'", err.AscType)
	}
	if err.Value != 3 {
		t.Errorf("Value = %v, want 3", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "odd length 3" {
		t.Errorf("Detail = %v, want 'odd length 3'", err.Detail)
	}
}

func TestDeterministic(t *testing.T) {
	t.Run("wraps cause", func(t *testing.T) {
		cause := SizeMismatch(PhaseDecode, "bool", 1, 2)
		err := Deterministic(cause)
		if !IsDeterministic(err) {
			t.Fatal("expected deterministic error")
		}
		if err.Error() != cause.Error() {
			t.Errorf("Error() = %q, want %q", err.Error(), cause.Error())
		}
		var e *Error
		if !errors.As(err, &e) || e.Kind != KindSizeMismatch {
			t.Errorf("errors.As did not reach the cause: %v", err)
		}
	})

	t.Run("nil", func(t *testing.T) {
		if Deterministic(nil) != nil {
			t.Error("Deterministic(nil) should be nil")
		}
	})

	t.Run("no double wrap", func(t *testing.T) {
		err := Deterministic(errors.New("x"))
		if Deterministic(err) != err {
			t.Error("already deterministic error should be returned unchanged")
		}
	})

	t.Run("survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", Deterministicf(PhaseDecode, KindInvalidData, "bad %s", "bytes"))
		if !IsDeterministic(err) {
			t.Error("expected deterministic error through fmt.Errorf")
		}
		if !errors.Is(err, &DeterministicError{}) {
			t.Error("errors.Is should match DeterministicError")
		}
	})

	t.Run("plain errors are not deterministic", func(t *testing.T) {
		if IsDeterministic(AllocationFailed(PhaseAlloc, 64, errors.New("oom"))) {
			t.Error("allocation failure must not be deterministic")
		}
		if IsDeterministic(nil) {
			t.Error("nil must not be deterministic")
		}
	})
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("SizeMismatch", func(t *testing.T) {
		err := SizeMismatch(PhaseDecode, "uint32", 4, 3)
		if err.Kind != KindSizeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSizeMismatch)
		}
		if !strings.Contains(err.Detail, "expected 4 bytes, got 3") {
			t.Errorf("Detail = %v", err.Detail)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, 65530, 20, 65536)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != uint32(65530) {
			t.Errorf("Value = %v, want 65530", err.Value)
		}
	})

	t.Run("InvalidDiscriminant", func(t *testing.T) {
		err := InvalidDiscriminant(PhaseDecode, "TypeIndex", 1)
		if err.Kind != KindInvalidDiscriminant {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidDiscriminant)
		}
		if !strings.Contains(err.Error(), "value 1 is out of range") {
			t.Errorf("Error() = %v", err.Error())
		}
	})

	t.Run("AllocationFailed", func(t *testing.T) {
		err := AllocationFailed(PhaseAlloc, 1024, nil)
		if err.Kind != KindAllocation {
			t.Errorf("Kind = %v, want %v", err.Kind, KindAllocation)
		}
		if !strings.Contains(err.Detail, "1024") {
			t.Errorf("Detail = %v, should contain size", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseEncode, "map[string]int", "no fixed size")
		if err.Kind != KindUnsupported {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnsupported)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseDecode, "String")
		if err.Kind != KindNilPointer {
			t.Errorf("Kind = %v, want %v", err.Kind, KindNilPointer)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		err := Overflow(PhaseAlloc, uint64(1)<<33, "u32")
		if err.Kind != KindOverflow {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOverflow)
		}
	})

	t.Run("Trap", func(t *testing.T) {
		cause := errors.New("unreachable")
		err := Trap("handle", cause)
		if err.Kind != KindTrap || !errors.Is(err, cause) {
			t.Errorf("unexpected trap error: %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseRuntime, "function", "handle")
		if !strings.Contains(err.Error(), `function "handle" not found`) {
			t.Errorf("Error() = %v", err.Error())
		}
	})
}

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
				Phase:  PhaseLookup,
				Kind:   KindTypeMismatch,
				Name:   "format-date",
				Module: "app/templates/index",
				Detail: "not a helper factory",
			},
			contains: []string{"[lookup]", "type_mismatch", `"format-date"`, "app/templates/index", "not a helper factory"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseRuntime,
				Kind:  KindInvalidHandle,
			},
			contains: []string{"[runtime]", "invalid_handle"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindInvalidData,
				Detail: "read manifest",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "invalid_data", "read manifest", "caused by", "underlying error"},
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
		Phase: PhaseLoad,
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
		Phase: PhaseLookup,
		Kind:  KindNotFound,
		Name:  "foo",
	}

	if !err.Is(&Error{Phase: PhaseLookup, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseCompile, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseLookup, Kind: KindInvalidHandle}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseLookup, Kind: KindNotFound}
	if !errors.Is(fmt.Errorf("outer: %w", err), target) {
		t.Error("errors.Is should match through wrapping")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseLookup, KindTypeMismatch).
		Name("shout").
		Module("app/templates/index").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "helper", "service").
		Build()

	if err.Phase != PhaseLookup {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseLookup)
	}
	if err.Kind != KindTypeMismatch {
		t.Errorf("Kind = %v, want %v", err.Kind, KindTypeMismatch)
	}
	if err.Name != "shout" {
		t.Errorf("Name = %v, want 'shout'", err.Name)
	}
	if err.Module != "app/templates/index" {
		t.Errorf("Module = %v", err.Module)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected helper, got service" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseLookup, "component", "x-foo")
		if err.Kind != KindNotFound || err.Name != "x-foo" {
			t.Errorf("got %+v", err)
		}
		if err.Fatal() {
			t.Error("not-found must not be fatal")
		}
	})

	t.Run("MissingPartial", func(t *testing.T) {
		err := MissingPartial("header", "app/templates/index")
		if err.Kind != KindMissingPartial {
			t.Errorf("Kind = %v, want %v", err.Kind, KindMissingPartial)
		}
		if !err.Fatal() {
			t.Error("missing partial must be fatal")
		}
		if !strings.Contains(err.Error(), "header is not a partial") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("InvalidHandle", func(t *testing.T) {
		err := InvalidHandle(7, 3)
		if err.Kind != KindInvalidHandle {
			t.Errorf("Kind = %v", err.Kind)
		}
		if err.Value != uint32(7) {
			t.Errorf("Value = %v, want 7", err.Value)
		}
	})

	t.Run("TypeMismatch", func(t *testing.T) {
		err := TypeMismatch(PhaseRuntime, "add", "number", "abc")
		if !strings.Contains(err.Detail, "string") {
			t.Errorf("Detail = %q", err.Detail)
		}
	})

	t.Run("Registration", func(t *testing.T) {
		cause := errors.New("duplicate")
		err := Registration("helper:shout", cause)
		if err.Kind != KindRegistration || !errors.Is(err, cause) {
			t.Errorf("got %+v", err)
		}
	})
}

func TestIsFatal(t *testing.T) {
	if IsFatal(nil) {
		t.Error("nil is not fatal")
	}
	if IsFatal(errors.New("plain")) {
		t.Error("plain errors are not fatal")
	}
	if IsFatal(NotFound(PhaseLookup, "helper", "x")) {
		t.Error("not found is not fatal")
	}
	wrapped := fmt.Errorf("compile index: %w", MissingPartial("nav", ""))
	if !IsFatal(wrapped) {
		t.Error("wrapped missing partial should be fatal")
	}
}

func TestUnresolvedNamesError(t *testing.T) {
	t.Run("single name", func(t *testing.T) {
		err := NewUnresolvedNamesError([]string{"helper:format-date"})
		if len(err.Names) != 1 {
			t.Fatalf("expected 1 name, got %d", len(err.Names))
		}
		if err.Names[0].Kind != "helper" || err.Names[0].Name != "format-date" {
			t.Errorf("got %+v", err.Names[0])
		}
	})

	t.Run("grouped by kind", func(t *testing.T) {
		err := NewUnresolvedNamesError([]string{
			"helper:format-date",
			"component:x-widget",
			"helper:t",
		})
		msg := err.Error()
		for _, want := range []string{"unresolved 3", "helper:", "component:", "format-date", "x-widget"} {
			if !strings.Contains(msg, want) {
				t.Errorf("message %q missing %q", msg, want)
			}
		}
	})

	t.Run("missing kind", func(t *testing.T) {
		err := NewUnresolvedNamesError([]string{"bare"})
		if !strings.Contains(err.Error(), "unknown:") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("empty", func(t *testing.T) {
		err := NewUnresolvedNamesError(nil)
		if !strings.Contains(err.Error(), "no names specified") {
			t.Errorf("message = %q", err.Error())
		}
	})

	t.Run("errors.Is", func(t *testing.T) {
		err := NewUnresolvedNamesError([]string{"helper:x"})
		if !errors.Is(err, &UnresolvedNamesError{}) {
			t.Error("errors.Is should match UnresolvedNamesError")
		}
	})
}

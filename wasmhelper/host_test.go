package wasmhelper

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/owner"
)

// addWasm is a core module exporting add: (i64, i64) -> i64.
var addWasm = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x07, 0x01, 0x60, 0x02, 0x7e, 0x7e, 0x01, 0x7e,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x07, 0x01, 0x03, 0x61, 0x64, 0x64, 0x00, 0x00,
	0x0a, 0x09, 0x01, 0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x7c, 0x0b,
}

func newHost(t *testing.T) *Host {
	t.Helper()
	ctx := context.Background()
	h := NewHost(ctx)
	t.Cleanup(func() { h.Close(ctx) })
	return h
}

func TestParseSignature(t *testing.T) {
	sig, err := ParseSignature([]string{"s64", "bool", "f32"}, "u32")
	if err != nil {
		t.Fatal(err)
	}
	params, results := sig.Flatten()
	want := []api.ValueType{api.ValueTypeI64, api.ValueTypeI32, api.ValueTypeF32}
	if !equalTypes(params, want) {
		t.Errorf("params = %v, want %v", params, want)
	}
	if !equalTypes(results, []api.ValueType{api.ValueTypeI32}) {
		t.Errorf("results = %v", results)
	}
	if sig.String() != "(s64, bool, f32, -> u32)" {
		t.Errorf("String() = %q", sig.String())
	}

	if _, err := ParseSignature([]string{"string"}, ""); !stderrors.Is(err, errors.Unsupported(errors.PhaseLoad, "")) {
		t.Errorf("expected unsupported error, got %v", err)
	}

	none, err := ParseSignature(nil, "")
	if err != nil {
		t.Fatal(err)
	}
	if _, results := none.Flatten(); results != nil {
		t.Errorf("results = %v", results)
	}
}

func TestHelperCall(t *testing.T) {
	ctx := context.Background()
	h := newHost(t)
	mod, err := h.Instantiate(ctx, "math", addWasm)
	if err != nil {
		t.Fatal(err)
	}
	again, err := h.Instantiate(ctx, "math", addWasm)
	if err != nil || again != mod {
		t.Fatalf("second Instantiate = %v, %v", again, err)
	}

	sig, _ := ParseSignature([]string{"s64", "s64"}, "s64")
	f, err := h.Helper(mod, "add", sig)
	if err != nil {
		t.Fatal(err)
	}
	if f.HelperKind() != owner.HelperSimple {
		t.Errorf("kind = %v", f.HelperKind())
	}

	compute := f.Create().(interface {
		Compute([]any, map[string]any) any
	})
	tests := []struct {
		args []any
		want any
	}{
		{[]any{2, 3}, 5},
		{[]any{-10, 4.0}, -6},
		{[]any{"7", int64(1)}, 8},
		{[]any{1}, nil},
		{[]any{1.5, 1}, nil},
		{[]any{true, 1}, nil},
	}
	for _, tt := range tests {
		if got := compute.Compute(tt.args, nil); got != tt.want {
			t.Errorf("add%v = %v, want %v", tt.args, got, tt.want)
		}
	}
}

func TestHelperSignatureMismatch(t *testing.T) {
	ctx := context.Background()
	h := newHost(t)
	mod, err := h.Instantiate(ctx, "math", addWasm)
	if err != nil {
		t.Fatal(err)
	}

	sig, _ := ParseSignature([]string{"u32", "u32"}, "u32")
	if _, err := h.Helper(mod, "add", sig); err == nil {
		t.Error("expected signature mismatch")
	}
	if _, err := h.Helper(mod, "sub", sig); !stderrors.Is(err, errors.NotFound(errors.PhaseLoad, "", "")) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestInstantiateInvalid(t *testing.T) {
	h := newHost(t)
	_, err := h.Instantiate(context.Background(), "bad", []byte{0x00, 0x61, 0x73})
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInstantiation {
		t.Errorf("expected instantiation error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "math.wasm")
	if err := os.WriteFile(path, addWasm, 0o600); err != nil {
		t.Fatal(err)
	}
	h := newHost(t)
	mod, err := h.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if mod.Name() != "math.wasm" {
		t.Errorf("Name() = %q", mod.Name())
	}
	if _, err := h.LoadFile(context.Background(), path+".missing"); err == nil {
		t.Error("expected a load error")
	}
}

func TestLowerLift(t *testing.T) {
	tests := []struct {
		typ   wit.Type
		in    any
		want  any
		fails bool
	}{
		{wit.Bool{}, true, true, false},
		{wit.Bool{}, 1, nil, true},
		{wit.U8{}, 255, 255, false},
		{wit.U8{}, 256, nil, true},
		{wit.S8{}, -128, -128, false},
		{wit.U16{}, -1, nil, true},
		{wit.S16{}, -300, -300, false},
		{wit.U32{}, uint32(4000000000), 4000000000, false},
		{wit.S32{}, -5, -5, false},
		{wit.U64{}, 7, uint64(7), false},
		{wit.U64{}, -7, nil, true},
		{wit.S64{}, -7, -7, false},
		{wit.F32{}, 1.5, 1.5, false},
		{wit.F64{}, 3, 3.0, false},
		{wit.Char{}, "é", "é", false},
		{wit.Char{}, "ab", nil, true},
	}
	for _, tt := range tests {
		raw, err := lower(tt.typ, tt.in, 0)
		if tt.fails {
			if err == nil {
				t.Errorf("lower(%T, %v) succeeded", tt.typ, tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("lower(%T, %v): %v", tt.typ, tt.in, err)
			continue
		}
		if got := lift(tt.typ, raw); got != tt.want {
			t.Errorf("lift(lower(%T, %v)) = %#v, want %#v", tt.typ, tt.in, got, tt.want)
		}
	}
}

func TestCallFailureLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	ctx := context.Background()
	h := newHost(t)
	mod, err := h.Instantiate(ctx, "math", addWasm)
	if err != nil {
		t.Fatal(err)
	}
	sig, _ := ParseSignature([]string{"s64", "s64"}, "s64")
	f, _ := h.Helper(mod, "add", sig)
	compute := f.Create().(interface {
		Compute([]any, map[string]any) any
	})
	compute.Compute([]any{"x", 1}, nil)
	if logs.FilterMessage("wasm helper argument rejected").Len() != 1 {
		t.Errorf("expected one warning, got %d entries", logs.Len())
	}
}

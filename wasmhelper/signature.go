package wasmhelper

import (
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/template-resolver/errors"
)

// primitives maps WIT primitive type names to their types. Strings and
// compound types need linear memory and are not supported by helpers.
var primitives = map[string]wit.Type{
	"bool": wit.Bool{},
	"u8":   wit.U8{},
	"s8":   wit.S8{},
	"u16":  wit.U16{},
	"s16":  wit.S16{},
	"u32":  wit.U32{},
	"s32":  wit.S32{},
	"u64":  wit.U64{},
	"s64":  wit.S64{},
	"f32":  wit.F32{},
	"f64":  wit.F64{},
	"char": wit.Char{},
}

// Signature is the WIT-level signature of a helper export.
type Signature struct {
	Params []wit.Type
	Result wit.Type // nil for no result

	names []string
}

// ParseSignature builds a Signature from WIT primitive type names.
// An empty result means the export returns nothing.
func ParseSignature(params []string, result string) (Signature, error) {
	sig := Signature{Params: make([]wit.Type, len(params))}
	for i, name := range params {
		t, err := parseType(name)
		if err != nil {
			return Signature{}, err
		}
		sig.Params[i] = t
	}
	sig.names = append(sig.names, params...)
	if result != "" {
		t, err := parseType(result)
		if err != nil {
			return Signature{}, err
		}
		sig.Result = t
		sig.names = append(sig.names, "-> "+result)
	}
	return sig, nil
}

func parseType(name string) (wit.Type, error) {
	t, ok := primitives[strings.TrimSpace(name)]
	if !ok {
		return nil, errors.Unsupported(errors.PhaseLoad, fmt.Sprintf("WIT type %q", name))
	}
	return t, nil
}

func (s Signature) String() string {
	return "(" + strings.Join(s.names, ", ") + ")"
}

// flatType returns the core wasm type a WIT primitive lowers to.
func flatType(t wit.Type) api.ValueType {
	switch t.(type) {
	case wit.U64, wit.S64:
		return api.ValueTypeI64
	case wit.F32:
		return api.ValueTypeF32
	case wit.F64:
		return api.ValueTypeF64
	default:
		return api.ValueTypeI32
	}
}

// Flatten returns the core wasm parameter and result types of s.
func (s Signature) Flatten() (params, results []api.ValueType) {
	params = make([]api.ValueType, len(s.Params))
	for i, t := range s.Params {
		params[i] = flatType(t)
	}
	if s.Result != nil {
		results = []api.ValueType{flatType(s.Result)}
	}
	return params, results
}

// check verifies that def has exactly the flattened shape of s.
func (s Signature) check(def api.FunctionDefinition) error {
	params, results := s.Flatten()
	if !equalTypes(params, def.ParamTypes()) || !equalTypes(results, def.ResultTypes()) {
		return errors.InvalidData(errors.PhaseLoad, def.Name(),
			fmt.Sprintf("export signature does not match %s", s))
	}
	return nil
}

func equalTypes(a, b []api.ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Package wasmhelper backs template helpers with functions exported from
// core WebAssembly modules running in wazero.
//
// A helper's signature is declared with WIT primitive types and flattened to
// core wasm value types the way the canonical ABI does for scalars:
//
//	sig, _ := wasmhelper.ParseSignature([]string{"s64", "s64"}, "s64")
//	f, err := host.Helper(mod, "add", sig)
//	registry.MustRegister("helper:add", f)
//
// Template values are lowered per parameter type; out-of-range or mistyped
// arguments render the helper as nil and log a warning. Types that need
// linear memory (strings, lists, records) are not supported.
package wasmhelper

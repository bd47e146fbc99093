// Package templateresolver resolves the names used in compiled templates
// (helpers, modifiers, components and partials) to runtime definitions
// identified by stable integer handles.
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	templateresolver/
//	├── resolver/        Runtime resolver, compile-time lookup and macros
//	├── builtins/        Built-in helpers and the action modifier
//	├── owner/           Host registry of factories and templates
//	├── handle/          Append-only handle table
//	├── definition/      Component, helper, modifier and partial definitions
//	├── template/        Template factories, metadata and compile options
//	├── vm/              Argument, reference and frame types used by helpers
//	├── instrument/      Instrumentation spans
//	├── manifest/        HCL registry manifests
//	├── wasmhelper/      Helpers backed by WebAssembly exports
//	├── errors/          Structured error types
//	└── cmd/tmplresolve/ Command-line resolver and interactive inspector
//
// # Quick Start
//
//	reg := owner.NewRegistry()
//	reg.MustRegister("helper:shout", owner.SimpleHelper(shout))
//
//	r := resolver.NewWithDefaults(reg)
//	h, ok := r.LookupHelper("shout", template.Meta{ModuleName: "app/templates/index"})
//	if !ok {
//	    log.Fatal("not found")
//	}
//	def := r.Resolve(h).(*definition.Helper)
//
// # Lookup Order
//
// Built-in helpers and modifiers are consulted before the host. Host
// lookups try the name scoped to the referring template's module first
// and fall back to the unscoped registration.
//
// # Thread Safety
//
// A Resolver and an owner Registry are not safe for concurrent use.
package templateresolver

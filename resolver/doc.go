// Package resolver resolves helper, modifier, component and partial names
// used in compiled templates to runtime definitions, and identifies each
// definition by a stable handle.
//
// A Resolver is created per host application:
//
//	reg := owner.NewRegistry()
//	reg.MustRegister("helper:format", owner.SimpleHelper(format))
//	r := resolver.NewWithDefaults(reg)
//	h, ok := r.LookupHelper("format", template.Meta{ModuleName: "app/templates/index"})
//
// Built-in helpers and modifiers from package builtins always take
// precedence over host registrations. Helper, modifier and component misses
// return (handle.None, false). A missing partial returns a fatal
// *errors.Error because compilation cannot continue without it.
//
// Component lookups that construct a full definition are wrapped in the
// "render.getComponentDefinition" instrumentation span. Template-only
// components skip both the custom manager lookup and the span.
package resolver

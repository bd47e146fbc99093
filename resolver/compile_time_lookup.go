package resolver

import (
	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
)

// CompileTimeLookup is the view of a Resolver the opcode compiler uses.
type CompileTimeLookup struct {
	resolver *Resolver
}

var _ template.Lookup = (*CompileTimeLookup)(nil)

func (l *CompileTimeLookup) LookupHelper(name string, meta template.Meta) (handle.Handle, bool) {
	return l.resolver.LookupHelper(name, meta)
}

func (l *CompileTimeLookup) LookupModifier(name string, meta template.Meta) (handle.Handle, bool) {
	return l.resolver.LookupModifier(name, meta)
}

func (l *CompileTimeLookup) LookupComponentDefinition(name string, meta template.Meta) (handle.Handle, bool) {
	return l.resolver.LookupComponentDefinition(name, meta)
}

func (l *CompileTimeLookup) LookupPartial(name string, meta template.Meta) (handle.Handle, error) {
	return l.resolver.LookupPartial(name, meta)
}

// Capabilities returns the capabilities of the component definition behind h.
// Non-component handles have no capabilities.
func (l *CompileTimeLookup) Capabilities(h handle.Handle) definition.Capabilities {
	def, ok := handle.ResolveAs[definition.ComponentDefinition](l.resolver.handles, h)
	if !ok {
		return definition.Capabilities{}
	}
	return def.Capabilities()
}

// Layout returns the raw layout of the component definition behind h.
func (l *CompileTimeLookup) Layout(h handle.Handle) (owner.Layout, bool) {
	obj, ok := l.resolver.handles.Lookup(h)
	if !ok {
		return nil, false
	}
	switch def := obj.(type) {
	case *definition.Component:
		return def.Layout(), def.Layout() != nil
	case *definition.TemplateOnly:
		return def.Layout(), def.Layout() != nil
	}
	return nil, false
}

// LazyConstants resolves handles embedded in a compiled program on demand.
type LazyConstants struct {
	resolver *Resolver
}

// Resolve returns the object behind h.
func (c *LazyConstants) Resolve(h handle.Handle) any {
	return c.resolver.Resolve(h)
}

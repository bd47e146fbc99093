package resolver

import (
	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
)

// CompileOptions returns the options shared by every template this resolver
// creates. Callers must not modify the returned value.
func (r *Resolver) CompileOptions() *template.CompileOptions {
	return r.compile
}

// CreateTemplate instantiates f with the resolver's compile options and o as
// its owner. Every call returns a new template.
// TODO: cache by factory id and owner identity.
func (r *Resolver) CreateTemplate(f *template.Factory, o owner.Owner) *template.Template {
	return f.Create(template.Injections{Options: r.compile, Owner: o})
}

// GetWrappedLayout wraps t's parsed layout for compilation with caps. The
// layout is always compiled as a component layout, never as a partial.
func (r *Resolver) GetWrappedLayout(t *template.Template, caps definition.Capabilities) *template.WrappedLayout {
	opts := *r.compile
	opts.AsPartial = false
	opts.Referrer = t.Referrer()
	build := opts.Builder
	if build == nil {
		build = template.NewWrappedLayout
	}
	return build(opts, t.ParsedLayout(), caps)
}

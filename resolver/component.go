package resolver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/instrument"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
)

// ComponentSpan is the instrumentation span around component definition
// construction.
const ComponentSpan = "render.getComponentDefinition"

// LookupComponentDefinition resolves a component by name. Definitions are
// built once per (owner, module, name); misses are retried on every call.
func (r *Resolver) LookupComponentDefinition(name string, meta template.Meta) (handle.Handle, bool) {
	o := r.ownerFor(meta)
	key, cacheable := r.key(o, meta, name)
	if cacheable {
		if def, ok := r.components[key]; ok {
			return r.handles.Allocate(def)
		}
	}

	def := r.componentDefinition(o, name, meta)
	if def == nil {
		Logger().Debug("component not found", zap.String("name", name), zap.String("module", meta.ModuleName))
		return handle.None, false
	}
	if cacheable {
		r.components[key] = def
	}
	return r.handles.Allocate(def)
}

func (r *Resolver) componentDefinition(o owner.Owner, name string, meta template.Meta) definition.ComponentDefinition {
	if o == nil {
		return nil
	}
	pair := o.LookupComponent(name, meta.LookupOptions())
	if pair.Layout != nil && !owner.UsableLayout(pair.Layout) {
		Logger().Warn("ignoring component layout that cannot be identified by a handle",
			zap.String("name", name),
			zap.String("type", fmt.Sprintf("%T", pair.Layout)))
		pair.Layout = nil
	}

	if pair.Layout != nil && pair.Component == nil && r.opts.TemplateOnlyComponents {
		h, _ := r.handles.Allocate(pair.Layout)
		return definition.NewTemplateOnly(name, pair.Layout, h)
	}

	var manager owner.Factory
	if r.opts.CustomComponentManagers && pair.Layout != nil {
		if id := pair.Layout.ManagerID(); id != "" {
			manager = o.FactoryFor("component-manager:"+id, nil)
		}
	}

	finalize := r.opts.Instrumenter.Start(ComponentSpan, instrument.Payload{"object": "component:" + name})
	defer finalize()

	layoutHandle, _ := r.handles.Allocate(pair.Layout)
	if pair.Empty() {
		return nil
	}
	factory := pair.Component
	if factory == nil {
		factory = o.FactoryFor(owner.DefaultComponentID, nil)
	}
	return definition.NewComponent(name, manager, factory, layoutHandle, pair.Layout)
}

// LookupComponent resolves a component and returns its definition. A miss
// is reported as a non-fatal diagnostic.
func (r *Resolver) LookupComponent(name string, meta template.Meta) (definition.Definition, bool) {
	h, ok := r.LookupComponentDefinition(name, meta)
	if !ok {
		diag := errors.New(errors.PhaseLookup, errors.KindNotFound).
			Name(name).
			Module(meta.ModuleName).
			Detail("could not find component named %q (no component or template with that name was found)", name).
			Build()
		Logger().Warn("component not found", zap.Error(diag))
		if r.opts.OnDiagnostic != nil {
			r.opts.OnDiagnostic(diag)
		}
		return nil, false
	}
	def, ok := r.Resolve(h).(definition.Definition)
	return def, ok
}

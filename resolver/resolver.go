package resolver

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/builtins"
	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/instrument"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
)

// Resolver maps template names to runtime definitions and hands out stable
// handles for them.
//
// Lookup order for every kind:
//  1. Built-in table (helpers and modifiers)
//  2. Host owner, module-scoped first, then unscoped
//
// Misses are soft ((None, false)) except for partials, which return a fatal
// error. Resolver is not safe for concurrent use; a compile pass or VM step
// owns it for the duration of a lookup.
type Resolver struct {
	owner   owner.Owner
	opts    Options
	handles *handle.Table
	compile *template.CompileOptions

	helpers    map[cacheKey]*definition.Helper
	components map[cacheKey]definition.ComponentDefinition
}

type cacheKey struct {
	owner  owner.Owner
	module string
	name   string
}

// New creates a resolver backed by host. Meta.Owner, when set, overrides
// host for a single lookup.
func New(host owner.Owner, opts Options) *Resolver {
	if opts.Instrumenter == nil {
		opts.Instrumenter = instrument.Nop()
	}
	r := &Resolver{
		owner:      host,
		opts:       opts,
		handles:    handle.NewTable(),
		helpers:    make(map[cacheKey]*definition.Helper),
		components: make(map[cacheKey]definition.ComponentDefinition),
	}
	r.handles.Subscribe(handle.ObserverFunc(func(e handle.Event) {
		if e.Type == handle.EventAllocated {
			Logger().Debug("handle allocated",
				zap.Uint32("handle", uint32(e.Handle)),
				zap.String("type", fmt.Sprintf("%T", e.Value)))
		}
	}))
	r.compile = &template.CompileOptions{
		Program: &template.Program{Constants: &LazyConstants{resolver: r}},
		Macros:  populateMacros(template.NewMacros()),
		Lookup:  &CompileTimeLookup{resolver: r},
		Builder: template.NewWrappedLayout,
	}
	return r
}

// NewWithDefaults creates a resolver with DefaultOptions.
func NewWithDefaults(host owner.Owner) *Resolver {
	return New(host, DefaultOptions())
}

// Options returns the options the resolver was built with.
func (r *Resolver) Options() Options {
	return r.opts
}

// Handles returns the resolver's handle table.
func (r *Resolver) Handles() *handle.Table {
	return r.handles
}

// Resolve returns the object behind h. h must have been returned by one of
// the lookup methods of this resolver.
func (r *Resolver) Resolve(h handle.Handle) any {
	return r.handles.Resolve(h)
}

func (r *Resolver) ownerFor(meta template.Meta) owner.Owner {
	if meta.Owner != nil {
		return meta.Owner
	}
	return r.owner
}

func (r *Resolver) key(o owner.Owner, meta template.Meta, name string) (cacheKey, bool) {
	if o == nil || !reflect.TypeOf(o).Comparable() {
		return cacheKey{}, false
	}
	return cacheKey{owner: o, module: meta.ModuleName, name: name}, true
}

// LookupHelper resolves a helper by name. Built-ins win over host helpers.
func (r *Resolver) LookupHelper(name string, meta template.Meta) (handle.Handle, bool) {
	if h, ok := builtins.Helper(name); ok {
		return r.handles.Allocate(h)
	}

	o := r.ownerFor(meta)
	key, cacheable := r.key(o, meta, name)
	if cacheable {
		if def, ok := r.helpers[key]; ok {
			return r.handles.Allocate(def)
		}
	}

	def := r.lookupHostHelper(o, name, meta)
	if def == nil {
		Logger().Debug("helper not found", zap.String("name", name), zap.String("module", meta.ModuleName))
		return handle.None, false
	}
	if cacheable {
		r.helpers[key] = def
	}
	return r.handles.Allocate(def)
}

// LookupModifier resolves a modifier by name. Only built-in modifiers exist;
// the lookup context is not consulted.
func (r *Resolver) LookupModifier(name string, _ template.Meta) (handle.Handle, bool) {
	m, ok := builtins.Modifier(name)
	if !ok {
		Logger().Debug("modifier not found", zap.String("name", name))
		return handle.None, false
	}
	return r.handles.Allocate(m)
}

// LookupPartial resolves a partial by name. A missing partial is a fatal
// error that aborts compilation.
func (r *Resolver) LookupPartial(name string, meta template.Meta) (handle.Handle, error) {
	o := r.ownerFor(meta)
	var layout owner.Layout
	if o != nil {
		layout = o.LookupPartial(name)
	}
	if !owner.UsableLayout(layout) {
		return handle.None, errors.MissingPartial(name, meta.ModuleName)
	}
	h, _ := r.handles.Allocate(definition.NewPartial(name, layout))
	return h, nil
}

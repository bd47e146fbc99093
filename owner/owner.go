package owner

import (
	"reflect"
	"strings"

	"github.com/wippyai/template-resolver/vm"
)

// DefaultComponentID is the factory used for components that have a layout but
// no class of their own.
const DefaultComponentID = "component:-default"

// LookupOptions scopes a lookup to the module that requested it.
type LookupOptions struct {
	// Source is the requesting module in "template:<module>" form.
	Source string
}

// Scoped reports whether the options restrict the lookup to a module.
func (o *LookupOptions) Scoped() bool {
	return o != nil && o.Source != ""
}

// Layout is a compiled template as seen by the host registry. Layouts are
// identified by handle, so implementations must be comparable; pointer types
// are the usual choice.
type Layout interface {
	// ManagerID names the custom component manager declared by the layout, if any.
	ManagerID() string
}

// Factory produces instances of a registered class.
type Factory interface {
	Create() any
}

// HelperKind distinguishes the two helper factory shapes.
type HelperKind uint8

const (
	// HelperSimple helpers are pure compute functions.
	HelperSimple HelperKind = iota + 1
	// HelperClass helpers are instantiated per use and destroyed with the render.
	HelperClass
)

func (k HelperKind) String() string {
	switch k {
	case HelperSimple:
		return "simple"
	case HelperClass:
		return "class"
	default:
		return "unknown"
	}
}

// HelperFactory is a Factory satisfying the helper capability.
// Create must return a vm.Computer.
type HelperFactory interface {
	Factory
	HelperKind() HelperKind
}

// ComponentPair is the result of a component lookup. Either field may be nil.
type ComponentPair struct {
	Layout    Layout
	Component Factory
}

// Empty reports whether neither a layout nor a component was found. A typed
// nil or non-comparable layout counts as absent.
func (p ComponentPair) Empty() bool {
	return !UsableLayout(p.Layout) && p.Component == nil
}

// UsableLayout reports whether l is a non-nil layout that can be identified
// by a handle. Typed nil pointers and values that are not comparable at
// run time are rejected.
func UsableLayout(l Layout) bool {
	if l == nil {
		return false
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	return v.Comparable()
}

// Owner is the narrow host-registry capability the resolver depends on.
// Implementations are read-only from the resolver's point of view.
type Owner interface {
	// FactoryFor resolves a factory by "type:name" identifier, optionally
	// scoped to a module. It returns nil when nothing is registered.
	FactoryFor(id string, opts *LookupOptions) Factory

	// LookupComponent resolves the layout and class registered for a component name.
	LookupComponent(name string, opts *LookupOptions) ComponentPair

	// LookupPartial resolves a partial template by name, or nil.
	LookupPartial(name string) Layout
}

// ParseID splits a "type:name" identifier.
func ParseID(id string) (typ, name string, ok bool) {
	typ, name, ok = strings.Cut(id, ":")
	if !ok || typ == "" || name == "" {
		return "", "", false
	}
	return typ, name, true
}

type factoryFunc func() any

func (f factoryFunc) Create() any { return f() }

// NewFactory adapts a constructor to the Factory interface.
func NewFactory(create func() any) Factory {
	return factoryFunc(create)
}

type simpleHelper struct {
	compute vm.ComputeFunc
}

func (h *simpleHelper) Compute(positional []any, named map[string]any) any {
	return h.compute(positional, named)
}

type simpleHelperFactory struct {
	helper *simpleHelper
}

func (f *simpleHelperFactory) Create() any            { return f.helper }
func (f *simpleHelperFactory) HelperKind() HelperKind { return HelperSimple }

// SimpleHelper returns a helper factory for a pure compute function.
func SimpleHelper(compute vm.ComputeFunc) HelperFactory {
	return &simpleHelperFactory{helper: &simpleHelper{compute: compute}}
}

type classHelperFactory struct {
	create func() vm.Computer
}

func (f *classHelperFactory) Create() any            { return f.create() }
func (f *classHelperFactory) HelperKind() HelperKind { return HelperClass }

// ClassHelper returns a helper factory that creates a new instance per use.
// Instances implementing vm.Destroyable are destroyed with the owning render.
func ClassHelper(create func() vm.Computer) HelperFactory {
	return &classHelperFactory{create: create}
}

// Component is the instance produced by the default component factory.
type Component struct {
	Attrs map[string]any
}

func newDefaultComponent() any {
	return &Component{Attrs: map[string]any{}}
}

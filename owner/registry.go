package owner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wippyai/template-resolver/errors"
)

// RegisterOption configures a registration.
type RegisterOption func(*registerConfig)

type registerConfig struct {
	source string
}

// WithSource scopes a registration to a module ("template:<module>").
// Scoped entries are only visible to lookups carrying the same source.
func WithSource(source string) RegisterOption {
	return func(c *registerConfig) {
		c.source = source
	}
}

type scope struct {
	factories map[string]Factory
	templates map[string]Layout
}

func newScope() *scope {
	return &scope{
		factories: make(map[string]Factory),
		templates: make(map[string]Layout),
	}
}

// Registry is an in-memory Owner with global and module-scoped entries.
//
// Resolution priority for a scoped lookup:
//  1. Entries registered with the same source
//  2. Global entries (component pairs only; FactoryFor does not fall back)
//
// Registry is not safe for concurrent registration.
type Registry struct {
	global *scope
	scoped map[string]*scope
}

// NewRegistry creates a registry with the default component factory installed.
func NewRegistry() *Registry {
	r := &Registry{
		global: newScope(),
		scoped: make(map[string]*scope),
	}
	r.global.factories[DefaultComponentID] = NewFactory(newDefaultComponent)
	return r
}

func (r *Registry) scopeFor(source string, create bool) *scope {
	if source == "" {
		return r.global
	}
	s, ok := r.scoped[source]
	if !ok && create {
		s = newScope()
		r.scoped[source] = s
	}
	return s
}

func applyOptions(opts []RegisterOption) registerConfig {
	var cfg registerConfig
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Register adds a factory under a "type:name" identifier.
func (r *Registry) Register(id string, f Factory, opts ...RegisterOption) error {
	if _, _, ok := ParseID(id); !ok {
		return errors.Registration(id, fmt.Errorf("identifier must have the form type:name"))
	}
	if f == nil {
		return errors.Registration(id, fmt.Errorf("nil factory"))
	}
	if strings.HasPrefix(id, "template:") {
		return errors.Registration(id, fmt.Errorf("templates are registered with RegisterTemplate"))
	}
	cfg := applyOptions(opts)
	s := r.scopeFor(cfg.source, true)
	if _, exists := s.factories[id]; exists && id != DefaultComponentID {
		return errors.Registration(id, fmt.Errorf("already registered"))
	}
	s.factories[id] = f
	return nil
}

// RegisterTemplate adds a layout under a "template:name" identifier.
func (r *Registry) RegisterTemplate(id string, l Layout, opts ...RegisterOption) error {
	typ, _, ok := ParseID(id)
	if !ok || typ != "template" {
		return errors.Registration(id, fmt.Errorf("identifier must have the form template:name"))
	}
	if l == nil {
		return errors.Registration(id, fmt.Errorf("nil template"))
	}
	if !UsableLayout(l) {
		return errors.Registration(id, fmt.Errorf("template %T is nil or not comparable", l))
	}
	cfg := applyOptions(opts)
	s := r.scopeFor(cfg.source, true)
	if _, exists := s.templates[id]; exists {
		return errors.Registration(id, fmt.Errorf("already registered"))
	}
	s.templates[id] = l
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(id string, f Factory, opts ...RegisterOption) {
	if err := r.Register(id, f, opts...); err != nil {
		panic(err)
	}
}

// MustRegisterTemplate is like RegisterTemplate but panics on error.
func (r *Registry) MustRegisterTemplate(id string, l Layout, opts ...RegisterOption) {
	if err := r.RegisterTemplate(id, l, opts...); err != nil {
		panic(err)
	}
}

// FactoryFor implements Owner.
func (r *Registry) FactoryFor(id string, opts *LookupOptions) Factory {
	var s *scope
	if opts.Scoped() {
		s = r.scopeFor(opts.Source, false)
	} else {
		s = r.global
	}
	if s == nil {
		return nil
	}
	return s.factories[id]
}

// Template returns the layout registered under id.
func (r *Registry) Template(id string, opts *LookupOptions) Layout {
	var s *scope
	if opts.Scoped() {
		s = r.scopeFor(opts.Source, false)
	} else {
		s = r.global
	}
	if s == nil {
		return nil
	}
	return s.templates[id]
}

// LookupComponent implements Owner. A scoped lookup that finds either half of
// the pair locally wins; otherwise the global pair is returned.
func (r *Registry) LookupComponent(name string, opts *LookupOptions) ComponentPair {
	if opts.Scoped() {
		local := r.componentPair(name, opts)
		if !local.Empty() {
			return local
		}
	}
	return r.componentPair(name, nil)
}

func (r *Registry) componentPair(name string, opts *LookupOptions) ComponentPair {
	var pair ComponentPair
	if f := r.FactoryFor("component:"+name, opts); f != nil {
		pair.Component = f
	}
	if l := r.Template("template:components/"+name, opts); l != nil {
		pair.Layout = l
	}
	return pair
}

// LookupPartial implements Owner. "nav/menu" resolves "template:nav/_menu"
// first, then "template:nav/menu". Names containing a period never resolve.
func (r *Registry) LookupPartial(name string) Layout {
	if name == "" || strings.Contains(name, ".") {
		return nil
	}
	if l := r.Template("template:"+underscored(name), nil); l != nil {
		return l
	}
	return r.Template("template:"+name, nil)
}

func underscored(name string) string {
	parts := strings.Split(name, "/")
	last := len(parts) - 1
	parts[last] = "_" + parts[last]
	return strings.Join(parts, "/")
}

// IDs returns every registered identifier, globally and per source, sorted.
// Scoped identifiers are prefixed with their source and "@".
func (r *Registry) IDs() []string {
	var ids []string
	collect := func(prefix string, s *scope) {
		for id := range s.factories {
			ids = append(ids, prefix+id)
		}
		for id := range s.templates {
			ids = append(ids, prefix+id)
		}
	}
	collect("", r.global)
	for source, s := range r.scoped {
		collect(source+"@", s)
	}
	sort.Strings(ids)
	return ids
}

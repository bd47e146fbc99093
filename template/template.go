package template

import (
	"github.com/google/uuid"

	"github.com/wippyai/template-resolver/owner"
)

// Meta is the lookup context carried alongside every name a template
// references: the owning container and the module the template came from.
// Meta is never mutated once a template is created.
type Meta struct {
	Owner      owner.Owner
	ModuleName string
	ManagerID  string
}

// LookupOptions returns the module-scoped lookup options for m, or nil when
// the template has no module name.
func (m Meta) LookupOptions() *owner.LookupOptions {
	if m.ModuleName == "" {
		return nil
	}
	return &owner.LookupOptions{Source: "template:" + m.ModuleName}
}

// ParsedLayout is the parser's output for a template: an opaque serialized
// block plus the referrer it was compiled for.
type ParsedLayout struct {
	ID       string
	Block    string
	Referrer Meta
}

// Template is a template bound to compile options and an owner.
type Template struct {
	id        string
	factoryID string
	parsed    *ParsedLayout
	options   *CompileOptions
	meta      Meta
}

// ID returns the unique id of this template instance.
func (t *Template) ID() string { return t.id }

// FactoryID returns the id of the factory that created the template.
func (t *Template) FactoryID() string { return t.factoryID }

// Referrer returns the template's lookup context.
func (t *Template) Referrer() Meta { return t.meta }

// ManagerID implements owner.Layout.
func (t *Template) ManagerID() string { return t.meta.ManagerID }

// Owner returns the owner injected at creation.
func (t *Template) Owner() owner.Owner { return t.meta.Owner }

// Options returns the compile options injected at creation.
func (t *Template) Options() *CompileOptions { return t.options }

// ParsedLayout returns the parsed layout the template wraps.
func (t *Template) ParsedLayout() *ParsedLayout { return t.parsed }

// Injections are the dependencies a factory binds into a template.
type Injections struct {
	Options *CompileOptions
	Owner   owner.Owner
}

// Factory creates templates from a precompiled block.
type Factory struct {
	ID    string
	Block string
	Meta  Meta
}

// NewFactory creates a factory for a precompiled block.
func NewFactory(id, block string, meta Meta) *Factory {
	return &Factory{ID: id, Block: block, Meta: meta}
}

// Create instantiates a template. Every call returns a new instance.
func (f *Factory) Create(inj Injections) *Template {
	meta := f.Meta
	if inj.Owner != nil {
		meta.Owner = inj.Owner
	}
	return &Template{
		id:        uuid.NewString(),
		factoryID: f.ID,
		options:   inj.Options,
		meta:      meta,
		parsed: &ParsedLayout{
			ID:       f.ID,
			Block:    f.Block,
			Referrer: meta,
		},
	}
}

// New creates a standalone template with no compile options, as used by
// host registries that hold layouts before any resolver exists.
func New(id, block string, meta Meta) *Template {
	return NewFactory(id, block, meta).Create(Injections{})
}

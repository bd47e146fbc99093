package template

import (
	"sort"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/owner"
)

// Lookup is the compile-time view of the resolver used by the opcode compiler.
type Lookup interface {
	LookupHelper(name string, meta Meta) (handle.Handle, bool)
	LookupModifier(name string, meta Meta) (handle.Handle, bool)
	LookupComponentDefinition(name string, meta Meta) (handle.Handle, bool)
	LookupPartial(name string, meta Meta) (handle.Handle, error)
	Capabilities(h handle.Handle) definition.Capabilities
	Layout(h handle.Handle) (owner.Layout, bool)
}

// Constants resolves handles embedded in compiled programs.
type Constants interface {
	Resolve(h handle.Handle) any
}

// Program is the compiled program the opcode compiler appends to.
type Program struct {
	Constants Constants
}

// Macros records the syntax keywords the compiler expands inline.
type Macros struct {
	blocks  map[string]struct{}
	inlines map[string]struct{}
}

// NewMacros creates an empty macro table.
func NewMacros() *Macros {
	return &Macros{
		blocks:  make(map[string]struct{}),
		inlines: make(map[string]struct{}),
	}
}

// AddBlock registers a block keyword.
func (m *Macros) AddBlock(name string) { m.blocks[name] = struct{}{} }

// AddInline registers an inline keyword.
func (m *Macros) AddInline(name string) { m.inlines[name] = struct{}{} }

// HasBlock reports whether name is a block keyword.
func (m *Macros) HasBlock(name string) bool {
	_, ok := m.blocks[name]
	return ok
}

// HasInline reports whether name is an inline keyword.
func (m *Macros) HasInline(name string) bool {
	_, ok := m.inlines[name]
	return ok
}

// Blocks returns the sorted block keywords.
func (m *Macros) Blocks() []string { return sortedKeys(m.blocks) }

// Inlines returns the sorted inline keywords.
func (m *Macros) Inlines() []string { return sortedKeys(m.inlines) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// WrapFunc builds an element-wrapping compiled layout. It stands in for the
// external opcode builder.
type WrapFunc func(opts CompileOptions, parsed *ParsedLayout, caps definition.Capabilities) *WrappedLayout

// CompileOptions configure how templates are compiled.
type CompileOptions struct {
	Program   *Program
	Macros    *Macros
	Lookup    Lookup
	Builder   WrapFunc
	AsPartial bool
	Referrer  Meta
}

// WrappedLayout is a layout compiled with its wrapping element.
type WrappedLayout struct {
	Options      CompileOptions
	Layout       *ParsedLayout
	Capabilities definition.Capabilities
}

// NewWrappedLayout is the default WrapFunc.
func NewWrappedLayout(opts CompileOptions, parsed *ParsedLayout, caps definition.Capabilities) *WrappedLayout {
	return &WrappedLayout{
		Options:      opts,
		Layout:       parsed,
		Capabilities: caps,
	}
}

// Referrer returns the lookup context the layout is compiled against.
func (w *WrappedLayout) Referrer() Meta {
	return w.Options.Referrer
}

package definition

import (
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/vm"
)

// Kind tags the variant of a Definition.
type Kind uint8

const (
	KindComponent Kind = iota + 1
	KindTemplateOnly
	KindHelper
	KindModifier
	KindPartial
	KindNestedView
)

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "component"
	case KindTemplateOnly:
		return "template-only"
	case KindHelper:
		return "helper"
	case KindModifier:
		return "modifier"
	case KindPartial:
		return "partial"
	case KindNestedView:
		return "nested-view"
	default:
		return "unknown"
	}
}

// Definition is a resolved runtime definition the VM knows how to invoke.
type Definition interface {
	Kind() Kind
	Name() string
}

// ComponentDefinition is implemented by both component variants.
type ComponentDefinition interface {
	Definition
	Capabilities() Capabilities
	LayoutHandle() handle.Handle
}

// Component is a full, class-backed component definition.
type Component struct {
	name         string
	manager      owner.Factory
	factory      owner.Factory
	layout       owner.Layout
	layoutHandle handle.Handle
}

// NewComponent bundles everything the VM needs to instantiate a component.
// manager and layout may be nil; layoutHandle is handle.None without a layout.
func NewComponent(name string, manager, factory owner.Factory, layoutHandle handle.Handle, layout owner.Layout) *Component {
	return &Component{
		name:         name,
		manager:      manager,
		factory:      factory,
		layout:       layout,
		layoutHandle: layoutHandle,
	}
}

func (c *Component) Kind() Kind   { return KindComponent }
func (c *Component) Name() string { return c.name }

// Manager returns the custom component manager factory, or nil.
func (c *Component) Manager() owner.Factory { return c.manager }

// Factory returns the factory that creates component instances.
func (c *Component) Factory() owner.Factory { return c.factory }

// Layout returns the raw layout, or nil.
func (c *Component) Layout() owner.Layout { return c.layout }

// LayoutHandle returns the handle of the layout, or handle.None.
func (c *Component) LayoutHandle() handle.Handle { return c.layoutHandle }

// Capabilities returns the curly component capabilities.
func (c *Component) Capabilities() Capabilities { return CurlyCapabilities }

// TemplateOnly is a component with a layout and no backing class.
type TemplateOnly struct {
	name         string
	layout       owner.Layout
	layoutHandle handle.Handle
}

// NewTemplateOnly creates a template-only component definition.
func NewTemplateOnly(name string, layout owner.Layout, layoutHandle handle.Handle) *TemplateOnly {
	return &TemplateOnly{name: name, layout: layout, layoutHandle: layoutHandle}
}

func (t *TemplateOnly) Kind() Kind                  { return KindTemplateOnly }
func (t *TemplateOnly) Name() string                { return t.name }
func (t *TemplateOnly) Layout() owner.Layout        { return t.layout }
func (t *TemplateOnly) LayoutHandle() handle.Handle { return t.layoutHandle }

// Capabilities returns the template-only capabilities: no instance lifecycle.
func (t *TemplateOnly) Capabilities() Capabilities { return TemplateOnlyCapabilities }

// HelperFunc is invoked by the VM for every helper call site evaluation.
type HelperFunc func(v vm.VM, args *vm.Args) vm.Reference

// Helper is a helper definition.
type Helper struct {
	name string
	fn   HelperFunc
}

// NewHelper creates a helper definition.
func NewHelper(name string, fn HelperFunc) *Helper {
	return &Helper{name: name, fn: fn}
}

func (h *Helper) Kind() Kind   { return KindHelper }
func (h *Helper) Name() string { return h.name }

// Invoke calls the helper.
func (h *Helper) Invoke(v vm.VM, args *vm.Args) vm.Reference {
	return h.fn(v, args)
}

// Partial is a named partial template.
type Partial struct {
	name     string
	template owner.Layout
}

// NewPartial creates a partial definition.
func NewPartial(name string, template owner.Layout) *Partial {
	return &Partial{name: name, template: template}
}

func (p *Partial) Kind() Kind             { return KindPartial }
func (p *Partial) Name() string           { return p.name }
func (p *Partial) Template() owner.Layout { return p.template }

package definition

import "github.com/wippyai/template-resolver/vm"

// Element is the DOM element a modifier is attached to.
type Element interface {
	SetAttribute(name, value string)
	RemoveAttribute(name string)
}

// ModifierManager drives the lifecycle of a modifier on an element.
type ModifierManager interface {
	Create(el Element, args *vm.CapturedArgs, scope vm.DynamicScope) any
	Install(state any)
	Update(state any)
	Destroy(state any)
}

// Modifier is a modifier definition.
type Modifier struct {
	name    string
	manager ModifierManager
}

// NewModifier creates a modifier definition.
func NewModifier(name string, manager ModifierManager) *Modifier {
	return &Modifier{name: name, manager: manager}
}

func (m *Modifier) Kind() Kind               { return KindModifier }
func (m *Modifier) Name() string             { return m.name }
func (m *Modifier) Manager() ModifierManager { return m.manager }

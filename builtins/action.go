package builtins

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/vm"
)

// ActionAttribute marks elements that carry at least one action modifier.
const ActionAttribute = "data-ember-action"

// ActionFunc is a closure action produced by the action helper.
type ActionFunc func(args ...any) any

// ActionTarget is implemented by objects that expose named actions.
type ActionTarget interface {
	Action(name string) (ActionFunc, bool)
}

// resolveAction finds the callable for action on target. String actions are
// looked up on the target; callables are used as they are.
func resolveAction(target, action any) ActionFunc {
	switch a := action.(type) {
	case ActionFunc:
		return a
	case func(args ...any) any:
		return a
	case func():
		return func(...any) any { a(); return nil }
	case string:
		switch t := target.(type) {
		case ActionTarget:
			if fn, ok := t.Action(a); ok {
				return fn
			}
		case map[string]any:
			if actions, ok := t["actions"].(map[string]any); ok {
				return resolveAction(nil, actions[a])
			}
			return resolveAction(nil, t[a])
		}
	}
	return nil
}

// processArgs prepends curried arguments and applies the value= path to the
// first invocation argument.
func processArgs(curried []vm.Reference, valuePath vm.Reference, invoked []any) []any {
	out := make([]any, 0, len(curried)+len(invoked))
	for _, ref := range curried {
		out = append(out, vm.ValueOf(ref))
	}
	out = append(out, invoked...)
	if valuePath != nil {
		if path, ok := vm.ValueOf(valuePath).(string); ok && path != "" && len(out) > 0 {
			out[0] = Get(out[0], path)
		}
	}
	return out
}

// action implements the closure form {{action context name arg...}}. The
// first positional argument is the implicit context; target= overrides it.
func action(_ vm.VM, args *vm.Args) vm.Reference {
	captured := args.Capture()
	context := captured.At(0)
	actionRef := captured.At(1)
	target := context
	if args.Has("target") {
		target = captured.Get("target")
	}
	var valuePath vm.Reference
	if args.Has("value") {
		valuePath = captured.Get("value")
	}
	var curried []vm.Reference
	for i := 2; i < captured.Len(); i++ {
		curried = append(curried, captured.At(i))
	}

	fn := ActionFunc(func(invoked ...any) any {
		call := resolveAction(vm.ValueOf(target), vm.ValueOf(actionRef))
		if call == nil {
			return nil
		}
		return call(processArgs(curried, valuePath, invoked)...)
	})
	return vm.Const(fn)
}

// ActionState is the per-element state of an installed action modifier.
type ActionState struct {
	ID        string
	Element   definition.Element
	EventName string
	Bubbles   bool
	Prevent   bool

	target    vm.Reference
	action    vm.Reference
	curried   []vm.Reference
	valuePath vm.Reference
	args      *vm.CapturedArgs
}

// Dispatch invokes the action with the event payload appended to the
// curried arguments.
func (s *ActionState) Dispatch(payload ...any) any {
	call := resolveAction(vm.ValueOf(s.target), vm.ValueOf(s.action))
	if call == nil {
		return nil
	}
	return call(processArgs(s.curried, s.valuePath, payload)...)
}

func (s *ActionState) refresh() {
	s.EventName = "click"
	if on, ok := vm.ValueOf(s.args.Get("on")).(string); ok && on != "" {
		s.EventName = on
	}
	s.Bubbles = true
	if b, ok := vm.ValueOf(s.args.Get("bubbles")).(bool); ok {
		s.Bubbles = b
	}
	s.Prevent = true
	if p, ok := vm.ValueOf(s.args.Get("preventDefault")).(bool); ok {
		s.Prevent = p
	}
}

// ActionRegistry tracks installed action modifiers by id for event dispatch.
type ActionRegistry struct {
	mu      sync.RWMutex
	next    atomic.Uint64
	actions map[string]*ActionState
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make(map[string]*ActionState)}
}

// Actions is the registry used by the built-in action modifier.
var Actions = NewActionRegistry()

func (r *ActionRegistry) nextID() string {
	return strconv.FormatUint(r.next.Add(1), 10)
}

// Lookup returns the installed action with id.
func (r *ActionRegistry) Lookup(id string) (*ActionState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.actions[id]
	return s, ok
}

// Len returns the number of installed actions.
func (r *ActionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

func (r *ActionRegistry) add(s *ActionState) {
	r.mu.Lock()
	r.actions[s.ID] = s
	r.mu.Unlock()
}

func (r *ActionRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.actions, id)
	r.mu.Unlock()
}

// ActionModifierManager implements the element form {{action "name"}}.
type ActionModifierManager struct {
	registry *ActionRegistry
}

// NewActionModifierManager creates a manager that installs into registry.
func NewActionModifierManager(registry *ActionRegistry) *ActionModifierManager {
	return &ActionModifierManager{registry: registry}
}

func (m *ActionModifierManager) Create(el definition.Element, args *vm.CapturedArgs, _ vm.DynamicScope) any {
	s := &ActionState{
		ID:      m.registry.nextID(),
		Element: el,
		target:  args.At(0),
		action:  args.At(1),
		args:    args,
	}
	if args.Has("target") {
		s.target = args.Get("target")
	}
	if args.Has("value") {
		s.valuePath = args.Get("value")
	}
	for i := 2; i < args.Len(); i++ {
		s.curried = append(s.curried, args.At(i))
	}
	s.refresh()
	return s
}

func (m *ActionModifierManager) Install(state any) {
	s := state.(*ActionState)
	s.Element.SetAttribute(ActionAttribute, "")
	s.Element.SetAttribute(ActionAttribute+"-"+s.ID, s.ID)
	m.registry.add(s)
}

func (m *ActionModifierManager) Update(state any) {
	state.(*ActionState).refresh()
}

func (m *ActionModifierManager) Destroy(state any) {
	s := state.(*ActionState)
	s.Element.RemoveAttribute(ActionAttribute + "-" + s.ID)
	m.registry.remove(s.ID)
}

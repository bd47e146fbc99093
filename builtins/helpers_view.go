package builtins

import (
	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/vm"
)

// OutletStateVar is the dynamic variable holding the routing outlet state.
const OutletStateVar = "outletState"

// MainOutlet is the outlet rendered when {{outlet}} has no name.
const MainOutlet = "main"

// OutletState is the routing state consumed by outlets. Outlets maps outlet
// names to the child state rendered into them.
type OutletState struct {
	Template string
	Model    any
	Outlets  map[string]*OutletState
}

// getDynamicVar reads a dynamic variable on every evaluation.
func getDynamicVar(v vm.VM, args *vm.Args) vm.Reference {
	nameRef := args.At(0)
	return vm.RefFunc(func() any {
		name, ok := vm.ValueOf(nameRef).(string)
		if !ok || v == nil {
			return nil
		}
		return vm.ValueOf(v.DynamicScope().Get(name))
	})
}

func outlet(v vm.VM, args *vm.Args) vm.Reference {
	nameRef := args.At(0)
	if args.Len() == 0 {
		nameRef = vm.Const(MainOutlet)
	}
	return vm.RefFunc(func() any {
		name, _ := vm.ValueOf(nameRef).(string)
		if name == "" || v == nil {
			return nil
		}
		parent, _ := vm.ValueOf(v.DynamicScope().Get(OutletStateVar)).(*OutletState)
		if parent == nil {
			return nil
		}
		child := parent.Outlets[name]
		if child == nil {
			return nil
		}
		return definition.NestedView{
			Type:   definition.NestedOutlet,
			Target: child.Template,
			Model:  child.Model,
			State:  child,
		}
	})
}

// mount renders a routeless engine: {{mount "engine" model=m}}.
var mount = lazy(func(args *vm.CapturedArgs) any {
	name, ok := vm.ValueOf(args.At(0)).(string)
	if !ok || name == "" {
		return nil
	}
	return definition.NestedView{
		Type:   definition.NestedMount,
		Target: name,
		Model:  vm.ValueOf(args.Get("model")),
	}
})

// render renders a named template with an optional model: {{render "name" model}}.
var render = lazy(func(args *vm.CapturedArgs) any {
	name, ok := vm.ValueOf(args.At(0)).(string)
	if !ok || name == "" {
		return nil
	}
	return definition.NestedView{
		Type:   definition.NestedRender,
		Target: name,
		Model:  vm.ValueOf(args.At(1)),
	}
})

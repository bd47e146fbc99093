package resolver

import (
	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
	"github.com/wippyai/template-resolver/vm"
)

func (r *Resolver) lookupHostHelper(o owner.Owner, name string, meta template.Meta) *definition.Helper {
	if o == nil {
		return nil
	}
	id := "helper:" + name
	f := o.FactoryFor(id, meta.LookupOptions())
	if f == nil {
		f = o.FactoryFor(id, nil)
	}
	hf, ok := f.(owner.HelperFactory)
	if !ok {
		if f != nil {
			Logger().Debug("factory is not a helper", zap.String("id", id))
		}
		return nil
	}

	switch hf.HelperKind() {
	case owner.HelperSimple:
		computer, ok := hf.Create().(vm.Computer)
		if !ok {
			return nil
		}
		return definition.NewHelper(name, simpleHelper(computer))
	case owner.HelperClass:
		return definition.NewHelper(name, classHelper(hf))
	}
	return nil
}

// simpleHelper shares one instance across calls; each call gets a fresh
// reference over its captured arguments.
func simpleHelper(c vm.Computer) definition.HelperFunc {
	return func(_ vm.VM, args *vm.Args) vm.Reference {
		return vm.NewSimpleHelperReference(c.Compute, args.Capture())
	}
}

// classHelper creates an instance per call and ties it to the render.
func classHelper(f owner.HelperFactory) definition.HelperFunc {
	return func(v vm.VM, args *vm.Args) vm.Reference {
		instance, ok := f.Create().(vm.Computer)
		if !ok {
			return vm.Undefined
		}
		if d, ok := instance.(vm.Destroyable); ok && v != nil {
			v.NewDestroyable(d)
		}
		return vm.NewClassHelperReference(instance, args.Capture())
	}
}

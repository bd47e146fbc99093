package vm

// ComputeFunc is the pure compute function of a simple helper.
type ComputeFunc func(positional []any, named map[string]any) any

// Computer is the per-call behavior of a class-based helper instance.
type Computer interface {
	Compute(positional []any, named map[string]any) any
}

// SimpleHelperReference evaluates a stateless compute function over captured args.
type SimpleHelperReference struct {
	compute ComputeFunc
	args    *CapturedArgs
}

// NewSimpleHelperReference binds compute to args.
func NewSimpleHelperReference(compute ComputeFunc, args *CapturedArgs) *SimpleHelperReference {
	return &SimpleHelperReference{compute: compute, args: args}
}

// Value computes the helper result.
func (r *SimpleHelperReference) Value() any {
	return r.compute(r.args.Positional(), r.args.Named())
}

// ClassHelperReference evaluates a helper instance over captured args.
type ClassHelperReference struct {
	instance Computer
	args     *CapturedArgs
}

// NewClassHelperReference binds instance to args.
func NewClassHelperReference(instance Computer, args *CapturedArgs) *ClassHelperReference {
	return &ClassHelperReference{instance: instance, args: args}
}

// Value computes the helper result.
func (r *ClassHelperReference) Value() any {
	return r.instance.Compute(r.args.Positional(), r.args.Named())
}

// Instance returns the helper instance backing the reference.
func (r *ClassHelperReference) Instance() Computer {
	return r.instance
}

package vm

import "context"

// Destroyable is implemented by objects whose lifetime is tied to a render.
type Destroyable interface {
	Destroy()
}

// DynamicScope holds dynamic variables visible to the current render.
type DynamicScope interface {
	Get(name string) Reference
}

// VM is the subset of the opcode VM that definitions call back into.
type VM interface {
	Context() context.Context
	NewDestroyable(d Destroyable)
	DynamicScope() DynamicScope
}

// Scope is a map-backed DynamicScope.
type Scope map[string]Reference

// Get returns the reference stored under name, or an undefined reference.
func (s Scope) Get(name string) Reference {
	if ref, ok := s[name]; ok {
		return ref
	}
	return Undefined
}

// Frame is a minimal VM used by hosts that evaluate helpers outside a render
// loop, and by tests. Destroy tears down destroyables in reverse order.
type Frame struct {
	ctx         context.Context
	scope       Scope
	destroyable []Destroyable
}

// NewFrame creates a frame with the given dynamic scope.
func NewFrame(ctx context.Context, scope Scope) *Frame {
	if ctx == nil {
		ctx = context.Background()
	}
	if scope == nil {
		scope = Scope{}
	}
	return &Frame{ctx: ctx, scope: scope}
}

// Context returns the frame's context.
func (f *Frame) Context() context.Context { return f.ctx }

// DynamicScope returns the frame's dynamic scope.
func (f *Frame) DynamicScope() DynamicScope { return f.scope }

// NewDestroyable ties d to the frame's lifetime.
func (f *Frame) NewDestroyable(d Destroyable) {
	f.destroyable = append(f.destroyable, d)
}

// Destroyables returns the number of objects awaiting destruction.
func (f *Frame) Destroyables() int {
	return len(f.destroyable)
}

// Destroy destroys everything registered with the frame.
func (f *Frame) Destroy() {
	for i := len(f.destroyable) - 1; i >= 0; i-- {
		f.destroyable[i].Destroy()
	}
	f.destroyable = nil
}

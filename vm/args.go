package vm

import "sort"

// Args are the arguments passed to a helper or modifier invocation.
// Capture returns a snapshot that stays valid after the VM reuses its stack.
type Args struct {
	Positional []Reference
	Named      map[string]Reference
}

// NewArgs creates Args from plain values.
func NewArgs(positional []any, named map[string]any) *Args {
	a := &Args{
		Positional: make([]Reference, len(positional)),
		Named:      make(map[string]Reference, len(named)),
	}
	for i, v := range positional {
		a.Positional[i] = Const(v)
	}
	for k, v := range named {
		a.Named[k] = Const(v)
	}
	return a
}

// At returns the i-th positional reference, or Undefined.
func (a *Args) At(i int) Reference {
	if a == nil || i < 0 || i >= len(a.Positional) {
		return Undefined
	}
	return a.Positional[i]
}

// Get returns the named reference, or Undefined.
func (a *Args) Get(name string) Reference {
	if a == nil {
		return Undefined
	}
	if ref, ok := a.Named[name]; ok {
		return ref
	}
	return Undefined
}

// Has reports whether a named argument was passed.
func (a *Args) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.Named[name]
	return ok
}

// Len returns the number of positional arguments.
func (a *Args) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Positional)
}

// Capture copies the argument references.
func (a *Args) Capture() *CapturedArgs {
	c := &CapturedArgs{}
	if a == nil {
		return c
	}
	c.positional = append([]Reference(nil), a.Positional...)
	if len(a.Named) > 0 {
		c.named = make(map[string]Reference, len(a.Named))
		for k, v := range a.Named {
			c.named[k] = v
		}
	}
	return c
}

// CapturedArgs is an immutable snapshot of Args.
type CapturedArgs struct {
	positional []Reference
	named      map[string]Reference
}

// At returns the i-th positional reference, or Undefined.
func (c *CapturedArgs) At(i int) Reference {
	if i < 0 || i >= len(c.positional) {
		return Undefined
	}
	return c.positional[i]
}

// Get returns the named reference, or Undefined.
func (c *CapturedArgs) Get(name string) Reference {
	if ref, ok := c.named[name]; ok {
		return ref
	}
	return Undefined
}

// Has reports whether a named argument was captured.
func (c *CapturedArgs) Has(name string) bool {
	_, ok := c.named[name]
	return ok
}

// Len returns the number of positional arguments.
func (c *CapturedArgs) Len() int {
	return len(c.positional)
}

// Positional evaluates every positional reference.
func (c *CapturedArgs) Positional() []any {
	out := make([]any, len(c.positional))
	for i, ref := range c.positional {
		out[i] = ValueOf(ref)
	}
	return out
}

// Named evaluates every named reference.
func (c *CapturedArgs) Named() map[string]any {
	out := make(map[string]any, len(c.named))
	for k, ref := range c.named {
		out[k] = ValueOf(ref)
	}
	return out
}

// NamedKeys returns the sorted named argument keys.
func (c *CapturedArgs) NamedKeys() []string {
	keys := make([]string, 0, len(c.named))
	for k := range c.named {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package vm

// Reference is a lazily evaluated value produced by a helper or argument.
type Reference interface {
	Value() any
}

// Updatable is implemented by references that accept writes.
type Updatable interface {
	Reference
	Update(v any)
}

type constRef struct {
	v any
}

func (c constRef) Value() any { return c.v }

// Const wraps a fixed value in a Reference.
func Const(v any) Reference {
	return constRef{v: v}
}

// Undefined is the reference to an absent value.
var Undefined Reference = constRef{}

// RefFunc adapts a function to the Reference interface.
type RefFunc func() any

// Value calls f.
func (f RefFunc) Value() any { return f() }

// Cell is a mutable reference.
type Cell struct {
	v any
}

// NewCell creates a mutable reference holding v.
func NewCell(v any) *Cell {
	return &Cell{v: v}
}

// Value returns the current value.
func (c *Cell) Value() any { return c.v }

// Update replaces the current value.
func (c *Cell) Update(v any) { c.v = v }

// ValueOf returns ref.Value(), treating a nil reference as undefined.
func ValueOf(ref Reference) any {
	if ref == nil {
		return nil
	}
	return ref.Value()
}

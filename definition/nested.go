package definition

// NestedType identifies the nested-view primitive that produced a NestedView.
type NestedType uint8

const (
	NestedOutlet NestedType = iota + 1
	NestedMount
	NestedRender
)

func (t NestedType) String() string {
	switch t {
	case NestedOutlet:
		return "outlet"
	case NestedMount:
		return "mount"
	case NestedRender:
		return "render"
	default:
		return "unknown"
	}
}

// NestedView is a curried definition for nested-view composition: an outlet,
// a mounted engine or a rendered template.
type NestedView struct {
	Type   NestedType
	Target string
	Model  any
	State  any
}

func (n NestedView) Kind() Kind   { return KindNestedView }
func (n NestedView) Name() string { return n.Type.String() + ":" + n.Target }

package definition

// Capabilities describe which component manager hooks the VM must call.
// The value is comparable so it can key layout caches.
type Capabilities struct {
	DynamicLayout  bool
	DynamicTag     bool
	PrepareArgs    bool
	CreateArgs     bool
	AttributeHook  bool
	ElementHook    bool
	DynamicScope   bool
	CreateCaller   bool
	UpdateHook     bool
	CreateInstance bool
}

// CurlyCapabilities are used by class-backed components.
var CurlyCapabilities = Capabilities{
	DynamicLayout:  true,
	DynamicTag:     true,
	PrepareArgs:    true,
	CreateArgs:     true,
	AttributeHook:  true,
	ElementHook:    true,
	DynamicScope:   true,
	CreateCaller:   true,
	UpdateHook:     true,
	CreateInstance: true,
}

// TemplateOnlyCapabilities are used by template-only components.
var TemplateOnlyCapabilities = Capabilities{}

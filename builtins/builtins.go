package builtins

import (
	"sort"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/vm"
)

// helperFuncs is the static table of intrinsic helpers. Built-ins are
// consulted before the host registry and cannot be shadowed.
var helperFuncs = map[string]definition.HelperFunc{
	"if":               inlineIf,
	"unless":           inlineUnless,
	"action":           action,
	"array":            array,
	"concat":           concat,
	"get":              get,
	"hash":             hash,
	"log":              log,
	"mut":              mut,
	"query-params":     queryParams,
	"readonly":         readonly,
	"unbound":          unbound,
	"-class":           class,
	"-each-in":         eachIn,
	"-input-type":      inputType,
	"-normalize-class": normalizeClass,
	"-html-safe":       htmlSafe,
	"-get-dynamic-var": getDynamicVar,
	"-mount":           mount,
	"-outlet":          outlet,
	"-render":          render,
}

var (
	helpers   = make(map[string]*definition.Helper, len(helperFuncs))
	modifiers = map[string]*definition.Modifier{
		"action": definition.NewModifier("action", &ActionModifierManager{registry: Actions}),
	}
)

func init() {
	for name, fn := range helperFuncs {
		helpers[name] = definition.NewHelper(name, fn)
	}
}

// Helper returns the built-in helper definition for name. The same pointer
// is returned on every call so handle tables deduplicate it.
func Helper(name string) (*definition.Helper, bool) {
	h, ok := helpers[name]
	return h, ok
}

// Modifier returns the built-in modifier definition for name.
func Modifier(name string) (*definition.Modifier, bool) {
	m, ok := modifiers[name]
	return m, ok
}

// HelperNames returns the sorted names of built-in helpers.
func HelperNames() []string {
	return sortedNames(helpers)
}

// ModifierNames returns the sorted names of built-in modifiers.
func ModifierNames() []string {
	return sortedNames(modifiers)
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lazy turns a function of the captured arguments into a helper whose
// result is recomputed on every read.
func lazy(fn func(args *vm.CapturedArgs) any) definition.HelperFunc {
	return func(_ vm.VM, args *vm.Args) vm.Reference {
		captured := args.Capture()
		return vm.RefFunc(func() any {
			return fn(captured)
		})
	}
}

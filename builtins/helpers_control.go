package builtins

import (
	"math"
	"reflect"

	"github.com/wippyai/template-resolver/vm"
)

// Truther lets values decide their own truthiness in conditionals.
type Truther interface {
	IsTruthy() bool
}

// Truthy reports how a conditional treats v: nil, false, zero numbers, empty
// strings and empty lists are falsy; everything else is truthy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case SafeString:
		return x != ""
	case Truther:
		return x.IsTruthy()
	case float64:
		return x != 0 && !math.IsNaN(x)
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Slice, reflect.Array:
		return rv.Len() != 0
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// inlineIf implements {{if cond truthy falsy}}.
var inlineIf = lazy(func(args *vm.CapturedArgs) any {
	if Truthy(vm.ValueOf(args.At(0))) {
		return vm.ValueOf(args.At(1))
	}
	return vm.ValueOf(args.At(2))
})

// inlineUnless implements {{unless cond falsy truthy}}.
var inlineUnless = lazy(func(args *vm.CapturedArgs) any {
	if Truthy(vm.ValueOf(args.At(0))) {
		return vm.ValueOf(args.At(2))
	}
	return vm.ValueOf(args.At(1))
})

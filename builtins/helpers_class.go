package builtins

import (
	"strings"
	"unicode"

	"github.com/wippyai/template-resolver/vm"
)

// SafeString is markup that must not be escaped when rendered.
type SafeString string

func (s SafeString) String() string { return string(s) }

// Dasherize converts camelCase, snake_case and spaced words to dash-case.
func Dasherize(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_' || r == ' ':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// class picks a class name from a boolean: (-class flag trueName falseName).
// Non-boolean values pass through.
var class = lazy(func(args *vm.CapturedArgs) any {
	value := vm.ValueOf(args.At(0))
	switch value {
	case true:
		if args.Len() > 1 {
			return Dasherize(Text(vm.ValueOf(args.At(1))))
		}
		return nil
	case false:
		if args.Len() > 2 {
			return Dasherize(Text(vm.ValueOf(args.At(2))))
		}
		return nil
	}
	return value
})

// normalizeClass turns a bound property into a class name: true yields the
// dasherized last path segment, falsy values other than 0 yield "".
var normalizeClass = lazy(func(args *vm.CapturedArgs) any {
	path := Text(vm.ValueOf(args.At(0)))
	name := path[strings.LastIndex(path, ".")+1:]
	value := vm.ValueOf(args.At(1))
	if value == true {
		return Dasherize(name)
	}
	if !Truthy(value) && !isZeroNumber(value) {
		return ""
	}
	return Text(value)
})

func isZeroNumber(v any) bool {
	switch x := v.(type) {
	case int:
		return x == 0
	case int64:
		return x == 0
	case float64:
		return x == 0
	}
	return false
}

var inputType = lazy(func(args *vm.CapturedArgs) any {
	if Text(vm.ValueOf(args.At(0))) == "checkbox" {
		return "-checkbox"
	}
	return "-text-field"
})

var htmlSafe = lazy(func(args *vm.CapturedArgs) any {
	return SafeString(Text(vm.ValueOf(args.At(0))))
})

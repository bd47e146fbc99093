package builtins

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/template-resolver/vm"
)

// Getter is implemented by objects that expose properties by key.
type Getter interface {
	Get(key string) any
}

// Setter is implemented by objects that accept property writes by key.
type Setter interface {
	Set(key string, value any)
}

// Text renders v the way text nodes do: nil becomes the empty string.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case SafeString:
		return string(x)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

var concat = lazy(func(args *vm.CapturedArgs) any {
	var b strings.Builder
	for _, v := range args.Positional() {
		b.WriteString(Text(v))
	}
	return b.String()
})

var array = lazy(func(args *vm.CapturedArgs) any {
	return args.Positional()
})

var hash = lazy(func(args *vm.CapturedArgs) any {
	return args.Named()
})

// GetReference is the result of the get helper. It reads a dotted path from
// a source object and writes back through Update when the leaf is settable.
type GetReference struct {
	source vm.Reference
	path   vm.Reference
}

// Value resolves the path against the current source.
func (r *GetReference) Value() any {
	path, ok := vm.ValueOf(r.path).(string)
	if !ok || path == "" {
		return nil
	}
	return Get(vm.ValueOf(r.source), path)
}

// Update writes v at the path. Writes to unsupported containers are dropped.
func (r *GetReference) Update(v any) {
	path, ok := vm.ValueOf(r.path).(string)
	if !ok || path == "" {
		return
	}
	parent := vm.ValueOf(r.source)
	segments := strings.Split(path, ".")
	last := len(segments) - 1
	if last > 0 {
		parent = Get(parent, strings.Join(segments[:last], "."))
	}
	set(parent, segments[last], v)
}

func get(_ vm.VM, args *vm.Args) vm.Reference {
	return &GetReference{source: args.At(0), path: args.At(1)}
}

// Get reads a dotted path from obj. Maps, Getters and exported struct fields
// are traversed; anything else yields nil.
func Get(obj any, path string) any {
	cur := obj
	for _, key := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		cur = property(cur, key)
	}
	return cur
}

func property(obj any, key string) any {
	switch x := obj.(type) {
	case map[string]any:
		return x[key]
	case Getter:
		return x.Get(key)
	}

	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		f := structField(rv, key)
		if !f.IsValid() || !f.CanInterface() {
			return nil
		}
		return f.Interface()
	}
	return nil
}

func set(obj any, key string, value any) {
	switch x := obj.(type) {
	case map[string]any:
		x[key] = value
		return
	case Setter:
		x.Set(key, value)
		return
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return
	}
	f := structField(rv.Elem(), key)
	if !f.IsValid() || !f.CanSet() {
		return
	}
	nv := reflect.ValueOf(value)
	if !nv.IsValid() {
		f.Set(reflect.Zero(f.Type()))
		return
	}
	if nv.Type().AssignableTo(f.Type()) {
		f.Set(nv)
	}
}

// structField finds key as written, then with its first letter upper-cased.
func structField(rv reflect.Value, key string) reflect.Value {
	if f := rv.FieldByName(key); f.IsValid() {
		return f
	}
	if key == "" {
		return reflect.Value{}
	}
	r := []rune(key)
	r[0] = unicode.ToUpper(r[0])
	return rv.FieldByName(string(r))
}

// Pair is a single key/value entry yielded by each-in.
type Pair struct {
	Key   string
	Value any
}

// EachIn marks a value for key/value iteration.
type EachIn struct {
	Source any
}

// Pairs returns the entries of the wrapped map or struct ordered by key.
func (e EachIn) Pairs() []Pair {
	var pairs []Pair
	rv := reflect.ValueOf(e.Source)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		iter := rv.MapRange()
		for iter.Next() {
			pairs = append(pairs, Pair{Key: iter.Key().String(), Value: iter.Value().Interface()})
		}
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < t.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			pairs = append(pairs, Pair{Key: t.Field(i).Name, Value: rv.Field(i).Interface()})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs
}

var eachIn = lazy(func(args *vm.CapturedArgs) any {
	return EachIn{Source: vm.ValueOf(args.At(0))}
})

// QueryParams is the value produced by the query-params helper.
type QueryParams struct {
	Values map[string]any
}

var queryParams = lazy(func(args *vm.CapturedArgs) any {
	return QueryParams{Values: args.Named()}
})

// unbound freezes its argument at invocation time.
func unbound(_ vm.VM, args *vm.Args) vm.Reference {
	return vm.Const(vm.ValueOf(args.At(0)))
}

// ReadonlyReference exposes the value of another reference without Update.
type ReadonlyReference struct {
	inner vm.Reference
}

func (r ReadonlyReference) Value() any { return vm.ValueOf(r.inner) }

func readonly(_ vm.VM, args *vm.Args) vm.Reference {
	inner := args.At(0)
	if m, ok := inner.(*MutReference); ok {
		inner = m.inner
	}
	return ReadonlyReference{inner: inner}
}

// MutReference marks a two-way bound value. Updates are forwarded to the
// wrapped reference when it is updatable.
type MutReference struct {
	inner vm.Updatable
}

func (r *MutReference) Value() any   { return r.inner.Value() }
func (r *MutReference) Update(v any) { r.inner.Update(v) }

func mut(_ vm.VM, args *vm.Args) vm.Reference {
	ref := args.At(0)
	switch x := ref.(type) {
	case *MutReference:
		return x
	case vm.Updatable:
		return &MutReference{inner: x}
	}
	return &MutReference{inner: vm.NewCell(vm.ValueOf(ref))}
}

func log(_ vm.VM, args *vm.Args) vm.Reference {
	captured := args.Capture()
	return vm.RefFunc(func() any {
		Logger().Info("template log", zap.Any("values", captured.Positional()))
		return nil
	})
}

package handle

import (
	"reflect"

	"github.com/wippyai/template-resolver/errors"
)

// sentinel occupies slot 0 so that no real object is ever given handle 0.
type sentinel struct{}

// Table is an append-only arena of objects with an identity-keyed reverse map.
// Handles are never removed or reused for the lifetime of the table.
// Table is not safe for concurrent use.
type Table struct {
	objects   []any
	index     map[any]Handle
	observers []Observer
}

// NewTable creates an empty table with slot 0 reserved.
func NewTable() *Table {
	objects := make([]any, 1, 64)
	objects[0] = sentinel{}
	return &Table{
		objects: objects,
		index:   make(map[any]Handle, 64),
	}
}

// Allocate returns the handle for obj, appending it on first sight.
// Pointers are deduplicated by identity, other comparable values by ==.
// A nil obj (including a typed nil pointer) returns (None, false).
// Allocate panics if obj is not comparable.
func (t *Table) Allocate(obj any) (Handle, bool) {
	if isNil(obj) {
		return None, false
	}
	if !reflect.TypeOf(obj).Comparable() {
		panic(errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Value(obj).
			Detail("cannot allocate handle for non-comparable %T", obj).
			Build())
	}

	if h, ok := t.index[obj]; ok {
		t.notify(Event{Type: EventReused, Handle: h, Value: obj})
		return h, true
	}

	h := Handle(len(t.objects))
	t.objects = append(t.objects, obj)
	t.index[obj] = h
	t.notify(Event{Type: EventAllocated, Handle: h, Value: obj})
	return h, true
}

// Resolve returns the object behind h. Resolving None or a handle this table
// never produced is a precondition violation and panics with a KindInvalidHandle error.
func (t *Table) Resolve(h Handle) any {
	obj, ok := t.Lookup(h)
	if !ok {
		panic(errors.InvalidHandle(uint32(h), len(t.objects)))
	}
	return obj
}

// Lookup returns the object behind h and whether h is valid.
func (t *Table) Lookup(h Handle) (any, bool) {
	if h == None || int(h) >= len(t.objects) {
		return nil, false
	}
	return t.objects[h], true
}

// HandleOf returns the handle previously allocated for obj.
func (t *Table) HandleOf(obj any) (Handle, bool) {
	if isNil(obj) || !reflect.TypeOf(obj).Comparable() {
		return None, false
	}
	h, ok := t.index[obj]
	return h, ok
}

// Len returns the number of allocated handles, excluding the reserved slot.
func (t *Table) Len() int {
	return len(t.objects) - 1
}

// Each iterates over allocated objects in allocation order.
func (t *Table) Each(fn func(Handle, any) bool) {
	for i := 1; i < len(t.objects); i++ {
		if !fn(Handle(i), t.objects[i]) {
			return
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.observers = append(t.observers, o)
}

func (t *Table) notify(e Event) {
	for _, o := range t.observers {
		o.OnHandleEvent(e)
	}
}

// ResolveAs returns the object behind h if it has type T.
func ResolveAs[T any](t *Table, h Handle) (T, bool) {
	var zero T
	obj, ok := t.Lookup(h)
	if !ok {
		return zero, false
	}
	v, ok := obj.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

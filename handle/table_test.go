package handle

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/template-resolver/errors"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(e Event) {
	o.events = append(o.events, e)
}

type object struct {
	name string
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	obj := &object{name: "layout"}
	h, ok := table.Allocate(obj)
	if !ok {
		t.Fatal("Allocate failed")
	}
	if h == None {
		t.Fatal("Expected non-zero handle")
	}

	got := table.Resolve(h)
	if got != obj {
		t.Fatalf("Resolve returned %v, want %v", got, obj)
	}

	if table.Len() != 1 {
		t.Fatalf("Len = %d, want 1", table.Len())
	}
}

func TestTable_IdentityDedup(t *testing.T) {
	table := NewTable()

	a := &object{name: "same"}
	b := &object{name: "same"}

	h1, _ := table.Allocate(a)
	h2, _ := table.Allocate(a)
	if h1 != h2 {
		t.Fatalf("same object got handles %d and %d", h1, h2)
	}

	h3, _ := table.Allocate(b)
	if h3 == h1 {
		t.Fatal("distinct objects with equal contents must get distinct handles")
	}

	if table.Len() != 2 {
		t.Fatalf("Len = %d, want 2", table.Len())
	}
}

func TestTable_RoundTrip(t *testing.T) {
	table := NewTable()
	objs := make([]*object, 50)
	handles := make([]Handle, 50)
	for i := range objs {
		objs[i] = &object{}
		handles[i], _ = table.Allocate(objs[i])
	}
	for i, h := range handles {
		if h == None {
			t.Fatalf("object %d got the reserved handle", i)
		}
		if table.Resolve(h) != objs[i] {
			t.Fatalf("handle %d does not resolve to object %d", h, i)
		}
	}
}

func TestTable_AllocationOrder(t *testing.T) {
	table := NewTable()
	a, b := &object{}, &object{}
	ha, _ := table.Allocate(a)
	hb, _ := table.Allocate(b)
	if ha != 1 || hb != 2 {
		t.Fatalf("handles = %d, %d; want 1, 2", ha, hb)
	}

	var seen []Handle
	table.Each(func(h Handle, _ any) bool {
		seen = append(seen, h)
		return true
	})
	if len(seen) != 2 || seen[0] != ha || seen[1] != hb {
		t.Fatalf("Each order = %v", seen)
	}
}

func TestTable_Nil(t *testing.T) {
	table := NewTable()

	if h, ok := table.Allocate(nil); ok || h != None {
		t.Fatalf("Allocate(nil) = %d, %v", h, ok)
	}

	var typed *object
	if h, ok := table.Allocate(typed); ok || h != None {
		t.Fatalf("Allocate(typed nil) = %d, %v", h, ok)
	}

	if table.Len() != 0 {
		t.Fatalf("Len = %d, want 0", table.Len())
	}
}

func TestTable_ResolveInvalid(t *testing.T) {
	table := NewTable()
	table.Allocate(&object{})

	for _, h := range []Handle{None, 2, 100} {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("Resolve(%d) should panic", h)
				}
				err, ok := r.(error)
				if !ok {
					t.Fatalf("panic value %v is not an error", r)
				}
				var e *errors.Error
				if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidHandle {
					t.Fatalf("panic = %v, want invalid handle error", err)
				}
			}()
			table.Resolve(h)
		}()
	}

	if _, ok := table.Lookup(None); ok {
		t.Fatal("Lookup(None) should fail")
	}
}

func TestTable_NonComparablePanics(t *testing.T) {
	table := NewTable()
	defer func() {
		if recover() == nil {
			t.Fatal("Allocate of a slice should panic")
		}
	}()
	table.Allocate([]int{1})
}

func TestTable_HandleOf(t *testing.T) {
	table := NewTable()
	obj := &object{}

	if _, ok := table.HandleOf(obj); ok {
		t.Fatal("HandleOf should fail before allocation")
	}
	h, _ := table.Allocate(obj)
	got, ok := table.HandleOf(obj)
	if !ok || got != h {
		t.Fatalf("HandleOf = %d, %v; want %d", got, ok, h)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	obj := &object{}
	h, _ := table.Allocate(obj)
	table.Allocate(obj)

	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventAllocated || obs.events[0].Handle != h {
		t.Errorf("first event = %+v", obs.events[0])
	}
	if obs.events[1].Type != EventReused || obs.events[1].Handle != h {
		t.Errorf("second event = %+v", obs.events[1])
	}
}

func TestResolveAs(t *testing.T) {
	table := NewTable()
	obj := &object{name: "x"}
	h, _ := table.Allocate(obj)

	got, ok := ResolveAs[*object](table, h)
	if !ok || got != obj {
		t.Fatalf("ResolveAs = %v, %v", got, ok)
	}

	if _, ok := ResolveAs[string](table, h); ok {
		t.Fatal("ResolveAs with wrong type should fail")
	}
	if _, ok := ResolveAs[*object](table, 99); ok {
		t.Fatal("ResolveAs with invalid handle should fail")
	}
}

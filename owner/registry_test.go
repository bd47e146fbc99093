package owner

import (
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/vm"
)

type layout struct {
	name    string
	manager string
}

func (l *layout) ManagerID() string { return l.manager }

func TestParseID(t *testing.T) {
	tests := []struct {
		id       string
		typ      string
		name     string
		expectOK bool
	}{
		{"helper:format", "helper", "format", true},
		{"template:components/x-foo", "template", "components/x-foo", true},
		{"helper", "", "", false},
		{":x", "", "", false},
		{"helper:", "", "", false},
	}
	for _, tt := range tests {
		typ, name, ok := ParseID(tt.id)
		if typ != tt.typ || name != tt.name || ok != tt.expectOK {
			t.Errorf("ParseID(%q) = %q, %q, %v", tt.id, typ, name, ok)
		}
	}
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry()
	f := NewFactory(func() any { return 1 })

	tests := []struct {
		name string
		err  error
	}{
		{"bad id", r.Register("helper", f)},
		{"nil factory", r.Register("helper:x", nil)},
		{"template prefix", r.Register("template:x", f)},
		{"template wrong type", r.RegisterTemplate("component:x", &layout{})},
		{"nil template", r.RegisterTemplate("template:x", nil)},
		{"typed nil template", r.RegisterTemplate("template:x", (*layout)(nil))},
		{"non-comparable template", r.RegisterTemplate("template:x", valueLayout{tags: []string{"a"}})},
	}
	for _, tt := range tests {
		var e *errors.Error
		if !stderrors.As(tt.err, &e) || e.Kind != errors.KindRegistration {
			t.Errorf("%s: expected registration error, got %v", tt.name, tt.err)
		}
	}

	if err := r.Register("helper:x", f); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("helper:x", f); err == nil {
		t.Error("expected duplicate registration error")
	}
	if err := r.Register("helper:x", f, WithSource("template:app")); err != nil {
		t.Errorf("scoped registration must not collide with global: %v", err)
	}
	if err := r.Register(DefaultComponentID, f); err != nil {
		t.Errorf("default component must be replaceable: %v", err)
	}
}

type valueLayout struct {
	tags []string
}

func (valueLayout) ManagerID() string { return "" }

type boxedLayout struct {
	v any
}

func (boxedLayout) ManagerID() string { return "" }

func TestUsableLayout(t *testing.T) {
	tests := []struct {
		name string
		l    Layout
		want bool
	}{
		{"nil", nil, false},
		{"typed nil pointer", (*layout)(nil), false},
		{"pointer", &layout{}, true},
		{"slice field", valueLayout{tags: []string{"a"}}, false},
		{"comparable boxed value", boxedLayout{v: "x"}, true},
		{"boxed slice", boxedLayout{v: []int{1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UsableLayout(tt.l); got != tt.want {
				t.Errorf("UsableLayout() = %v, want %v", got, tt.want)
			}
		})
	}

	if !(ComponentPair{Layout: (*layout)(nil)}).Empty() {
		t.Error("pair with only a typed nil layout must be empty")
	}
}

func TestDefaultComponent(t *testing.T) {
	r := NewRegistry()
	f := r.FactoryFor(DefaultComponentID, nil)
	if f == nil {
		t.Fatal("default component factory missing")
	}
	a, b := f.Create(), f.Create()
	if _, ok := a.(*Component); !ok {
		t.Fatalf("Create() = %T", a)
	}
	if a == b {
		t.Error("default component factory must create fresh instances")
	}
}

func TestFactoryForScoping(t *testing.T) {
	r := NewRegistry()
	global := NewFactory(func() any { return "global" })
	local := NewFactory(func() any { return "local" })
	r.MustRegister("helper:fmt", global)
	r.MustRegister("helper:fmt", local, WithSource("template:app"))
	r.MustRegister("helper:only-local", local, WithSource("template:app"))

	if got := r.FactoryFor("helper:fmt", nil).Create(); got != "global" {
		t.Errorf("unscoped = %v", got)
	}
	if got := r.FactoryFor("helper:fmt", &LookupOptions{Source: "template:app"}).Create(); got != "local" {
		t.Errorf("scoped = %v", got)
	}
	if r.FactoryFor("helper:only-local", nil) != nil {
		t.Error("scoped entry leaked into global lookup")
	}
	if r.FactoryFor("helper:fmt", &LookupOptions{Source: "template:other"}) != nil {
		t.Error("scoped FactoryFor must not fall back to global")
	}
	if (&LookupOptions{}).Scoped() || (*LookupOptions)(nil).Scoped() {
		t.Error("empty options reported as scoped")
	}
}

func TestLookupComponent(t *testing.T) {
	r := NewRegistry()
	globalLayout := &layout{name: "global"}
	localLayout := &layout{name: "local"}
	cls := &constFactory{v: "cls"}

	r.MustRegisterTemplate("template:components/x-foo", globalLayout)
	r.MustRegister("component:x-foo", cls)
	r.MustRegisterTemplate("template:components/x-foo", localLayout, WithSource("template:app"))

	pair := r.LookupComponent("x-foo", nil)
	if pair.Layout != globalLayout || pair.Component != cls {
		t.Errorf("global pair = %+v", pair)
	}

	pair = r.LookupComponent("x-foo", &LookupOptions{Source: "template:app"})
	if pair.Layout != localLayout || pair.Component != nil {
		t.Errorf("local pair = %+v", pair)
	}

	pair = r.LookupComponent("x-foo", &LookupOptions{Source: "template:other"})
	if pair.Layout != globalLayout {
		t.Errorf("fallback pair = %+v", pair)
	}

	if !r.LookupComponent("x-missing", nil).Empty() {
		t.Error("expected empty pair")
	}
}

func TestLookupPartial(t *testing.T) {
	r := NewRegistry()
	underscore := &layout{name: "_menu"}
	plain := &layout{name: "menu"}
	top := &layout{name: "footer"}
	r.MustRegisterTemplate("template:nav/_menu", underscore)
	r.MustRegisterTemplate("template:nav/menu", plain)
	r.MustRegisterTemplate("template:footer", top)

	tests := []struct {
		name string
		want Layout
	}{
		{"nav/menu", underscore},
		{"footer", top},
		{"nav.menu", nil},
		{"", nil},
		{"missing", nil},
	}
	for _, tt := range tests {
		got := r.LookupPartial(tt.name)
		if got != tt.want {
			t.Errorf("LookupPartial(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIDs(t *testing.T) {
	r := NewRegistry()
	r.MustRegister("helper:b", NewFactory(func() any { return nil }))
	r.MustRegisterTemplate("template:a", &layout{})
	r.MustRegister("helper:c", NewFactory(func() any { return nil }), WithSource("template:app"))

	want := []string{
		"component:-default",
		"helper:b",
		"template:a",
		"template:app@helper:c",
	}
	if got := r.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestHelperFactories(t *testing.T) {
	simple := SimpleHelper(func(positional []any, _ map[string]any) any { return len(positional) })
	if simple.HelperKind() != HelperSimple {
		t.Errorf("kind = %v", simple.HelperKind())
	}
	if simple.Create() != simple.Create() {
		t.Error("simple helper must return the same instance")
	}

	n := 0
	class := ClassHelper(func() vm.Computer {
		n++
		return &counter{id: n}
	})
	if class.HelperKind() != HelperClass || class.HelperKind().String() != "class" {
		t.Errorf("kind = %v", class.HelperKind())
	}
	a := class.Create().(*counter)
	b := class.Create().(*counter)
	if a.id == b.id {
		t.Error("class helper must create a new instance per call")
	}
}

type constFactory struct {
	v any
}

func (f *constFactory) Create() any { return f.v }

type counter struct {
	id int
}

func (c *counter) Compute([]any, map[string]any) any { return c.id }

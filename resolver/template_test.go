package resolver

import (
	"testing"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
)

func TestCreateTemplate(t *testing.T) {
	app := owner.NewRegistry()
	engine := owner.NewRegistry()
	r := NewWithDefaults(app)
	f := template.NewFactory("app/templates/index", "<h1>{{title}}</h1>", template.Meta{ModuleName: "app/templates/index"})

	a := r.CreateTemplate(f, engine)
	b := r.CreateTemplate(f, engine)
	if a == b || a.ID() == b.ID() {
		t.Error("CreateTemplate must return a new instance per call")
	}
	if a.Options() != r.CompileOptions() {
		t.Error("template not bound to the resolver's compile options")
	}
	if a.Owner() != owner.Owner(engine) {
		t.Error("owner not injected")
	}
	if a.FactoryID() != "app/templates/index" || a.Referrer().ModuleName != "app/templates/index" {
		t.Errorf("template = %+v", a.Referrer())
	}
}

func TestGetWrappedLayout(t *testing.T) {
	r := NewWithDefaults(owner.NewRegistry())
	tpl := r.CreateTemplate(template.NewFactory("components/x", "<div/>", template.Meta{ModuleName: "app/x"}), nil)

	w := r.GetWrappedLayout(tpl, definition.CurlyCapabilities)
	if w.Options.AsPartial {
		t.Error("wrapped layout compiled as a partial")
	}
	if w.Referrer().ModuleName != "app/x" {
		t.Errorf("referrer = %+v", w.Referrer())
	}
	if w.Layout != tpl.ParsedLayout() {
		t.Error("wrapped layout does not use the template's parsed layout")
	}
	if w.Capabilities != definition.CurlyCapabilities {
		t.Error("capabilities not passed through")
	}
	if r.CompileOptions().Referrer.ModuleName != "" {
		t.Error("shared compile options were modified")
	}

	var built int
	r.CompileOptions().Builder = func(opts template.CompileOptions, parsed *template.ParsedLayout, caps definition.Capabilities) *template.WrappedLayout {
		built++
		return template.NewWrappedLayout(opts, parsed, caps)
	}
	r.GetWrappedLayout(tpl, definition.TemplateOnlyCapabilities)
	r.GetWrappedLayout(tpl, definition.TemplateOnlyCapabilities)
	if built != 2 {
		t.Errorf("builder called %d times, want 2", built)
	}
}

func TestCompileTimeLookup(t *testing.T) {
	reg := owner.NewRegistry()
	layout := template.New("components/card", "", template.Meta{})
	reg.MustRegisterTemplate("template:components/card", layout)
	r := NewWithDefaults(reg)
	opts := r.CompileOptions()

	h, ok := opts.Lookup.LookupComponentDefinition("card", template.Meta{})
	if !ok {
		t.Fatal("card not resolved")
	}
	if caps := opts.Lookup.Capabilities(h); caps != definition.TemplateOnlyCapabilities {
		t.Errorf("capabilities = %+v", caps)
	}
	if l, ok := opts.Lookup.Layout(h); !ok || l != owner.Layout(layout) {
		t.Errorf("layout = %v, %v", l, ok)
	}
	if opts.Program.Constants.Resolve(h) != r.Resolve(h) {
		t.Error("constants disagree with the resolver")
	}

	hh, _ := opts.Lookup.LookupHelper("concat", template.Meta{})
	if caps := opts.Lookup.Capabilities(hh); caps != (definition.Capabilities{}) {
		t.Error("helpers have no capabilities")
	}
	if _, ok := opts.Lookup.Layout(hh); ok {
		t.Error("helpers have no layout")
	}
	if _, ok := opts.Lookup.Layout(handle.Handle(999)); ok {
		t.Error("invalid handle reported a layout")
	}
	if _, ok := opts.Lookup.LookupModifier("action", template.Meta{}); !ok {
		t.Error("action modifier not resolved")
	}
	if _, err := opts.Lookup.LookupPartial("nope", template.Meta{}); err == nil {
		t.Error("missing partial resolved")
	}
}

func TestMacros(t *testing.T) {
	m := NewWithDefaults(owner.NewRegistry()).CompileOptions().Macros
	for _, name := range []string{"outlet", "component", "render", "mount", "input", "textarea"} {
		if !m.HasInline(name) {
			t.Errorf("missing inline macro %q", name)
		}
	}
	if !m.HasBlock("component") {
		t.Error("missing block macro component")
	}
	if m.HasBlock("outlet") {
		t.Error("outlet is not a block macro")
	}
}

package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/owner"
	"github.com/wippyai/template-resolver/template"
	"github.com/wippyai/template-resolver/wasmhelper"
)

// ComponentManager is the instance created for a component_manager block.
type ComponentManager struct {
	Name string
}

// Parse decodes manifest source. filename is only used in diagnostics and to
// resolve relative wasm paths.
func Parse(filename string, src []byte) (*File, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.ParseFailed("manifest "+filename, diags)
	}
	return decode(filename, file)
}

// ParseFile reads and decodes the manifest at path.
func ParseFile(path string) (*File, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read manifest "+path, err)
	}
	return Parse(path, src)
}

func decode(filename string, file *hcl.File) (*File, error) {
	var f File
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, errors.ParseFailed("manifest "+filename, diags)
	}
	f.dir = filepath.Dir(filename)
	return &f, nil
}

// Load parses the manifest at path and applies it to reg.
func Load(ctx context.Context, path string, reg *owner.Registry, host *wasmhelper.Host) (*File, error) {
	f, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if err := f.Apply(ctx, reg, host); err != nil {
		return nil, err
	}
	return f, nil
}

func scope(module string) []owner.RegisterOption {
	if module == "" {
		return nil
	}
	return []owner.RegisterOption{owner.WithSource("template:" + module)}
}

// Apply registers every block of f into reg. host instantiates wasm helpers
// and may be nil when the manifest declares none.
func (f *File) Apply(ctx context.Context, reg *owner.Registry, host *wasmhelper.Host) error {
	for _, t := range f.Templates {
		tpl := template.New(t.Name, t.Source, template.Meta{ModuleName: t.Name, ManagerID: t.Manager})
		if err := reg.RegisterTemplate("template:"+t.Name, tpl, scope(t.Module)...); err != nil {
			return err
		}
	}

	for _, p := range f.Partials {
		if p.Name == "" || strings.Contains(p.Name, ".") {
			return errors.InvalidData(errors.PhaseLoad, p.Name, "partial names must be non-empty and contain no periods")
		}
		id := partialID(p.Name)
		tpl := template.New(id, p.Source, template.Meta{ModuleName: id})
		if err := reg.RegisterTemplate("template:"+id, tpl); err != nil {
			return err
		}
	}

	for _, c := range f.Components {
		factory, err := componentFactory(c)
		if err != nil {
			return err
		}
		if err := reg.Register("component:"+c.Name, factory, scope(c.Module)...); err != nil {
			return err
		}
	}

	for _, m := range f.Managers {
		name := m.Name
		factory := owner.NewFactory(func() any { return &ComponentManager{Name: name} })
		if err := reg.Register("component-manager:"+m.Name, factory); err != nil {
			return err
		}
	}

	for _, h := range f.Helpers {
		factory, err := f.helperFactory(ctx, h, host)
		if err != nil {
			return err
		}
		if err := reg.Register("helper:"+h.Name, factory, scope(h.Module)...); err != nil {
			return err
		}
	}
	return nil
}

// partialID stores "nav/menu" as "nav/_menu".
func partialID(name string) string {
	dir, base := "", name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		dir, base = name[:i+1], name[i+1:]
	}
	if strings.HasPrefix(base, "_") {
		return name
	}
	return dir + "_" + base
}

func componentFactory(c *Component) (owner.Factory, error) {
	attrs := map[string]any{}
	if c.Attrs != nil {
		v, err := toGo(*c.Attrs)
		if err != nil {
			return nil, errors.InvalidData(errors.PhaseLoad, c.Name, err.Error())
		}
		m, ok := v.(map[string]any)
		if !ok && v != nil {
			return nil, errors.TypeMismatch(errors.PhaseLoad, c.Name+".attrs", "object", v)
		}
		attrs = m
	}
	return owner.NewFactory(func() any {
		instance := &owner.Component{Attrs: make(map[string]any, len(attrs))}
		for k, v := range attrs {
			instance.Attrs[k] = v
		}
		return instance
	}), nil
}

func (f *File) helperFactory(ctx context.Context, h *Helper, host *wasmhelper.Host) (owner.HelperFactory, error) {
	switch {
	case h.Value != nil && h.Wasm != nil:
		return nil, errors.InvalidData(errors.PhaseLoad, h.Name, "helper sets both value and wasm")
	case h.Value != nil:
		v, err := toGo(*h.Value)
		if err != nil {
			return nil, errors.InvalidData(errors.PhaseLoad, h.Name, err.Error())
		}
		return owner.SimpleHelper(func([]any, map[string]any) any { return v }), nil
	case h.Wasm != nil:
		if host == nil {
			return nil, errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("helper %q needs a wasm host", h.Name))
		}
		sig, err := wasmhelper.ParseSignature(h.Wasm.Params, h.Wasm.Result)
		if err != nil {
			return nil, err
		}
		path := h.Wasm.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(f.dir, path)
		}
		mod, err := host.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		export := h.Wasm.Export
		if export == "" {
			export = h.Name
		}
		return host.Helper(mod, export, sig)
	}
	return nil, errors.InvalidData(errors.PhaseLoad, h.Name, "helper needs either value or wasm")
}

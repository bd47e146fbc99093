package main

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/wippyai/template-resolver/definition"
	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/handle"
	"github.com/wippyai/template-resolver/resolver"
	"github.com/wippyai/template-resolver/template"
)

var kinds = []string{"helper", "modifier", "component", "partial"}

// lookup resolves name as kind and returns its handle.
func lookup(r *resolver.Resolver, kind, name, module string) (handle.Handle, error) {
	meta := template.Meta{ModuleName: module}
	var (
		h  handle.Handle
		ok bool
	)
	switch kind {
	case "helper":
		h, ok = r.LookupHelper(name, meta)
	case "modifier":
		h, ok = r.LookupModifier(name, meta)
	case "component":
		h, ok = r.LookupComponentDefinition(name, meta)
	case "partial":
		return r.LookupPartial(name, meta)
	default:
		return handle.None, errors.InvalidInput(errors.PhaseLookup, fmt.Sprintf("unknown kind %q (want one of %s)", kind, strings.Join(kinds, ", ")))
	}
	if !ok {
		return handle.None, errors.NotFound(errors.PhaseLookup, kind, name)
	}
	return h, nil
}

// describe renders the object behind a handle for humans.
func describe(r *resolver.Resolver, obj any) string {
	switch def := obj.(type) {
	case *definition.Component:
		parts := []string{"component " + def.Name()}
		if def.LayoutHandle().Valid() {
			parts = append(parts, fmt.Sprintf("layout=#%d", def.LayoutHandle()))
		}
		if def.Manager() != nil {
			parts = append(parts, "custom-manager")
		}
		return strings.Join(parts, " ")
	case *definition.TemplateOnly:
		return fmt.Sprintf("template-only component %s layout=#%d", def.Name(), def.LayoutHandle())
	case *definition.Helper:
		return "helper " + def.Name()
	case *definition.Modifier:
		return "modifier " + def.Name()
	case *definition.Partial:
		return "partial " + def.Name()
	case *template.Template:
		return "template " + def.FactoryID()
	}
	return fmt.Sprintf("%T", obj)
}

// parseNames splits "kind:name,kind:name" into pairs.
func parseNames(s string) ([][2]string, error) {
	var out [][2]string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kind, name, ok := strings.Cut(item, ":")
		if !ok || name == "" {
			return nil, errors.InvalidInput(errors.PhaseLookup, fmt.Sprintf("%q is not kind:name", item))
		}
		out = append(out, [2]string{kind, name})
	}
	return out, nil
}

// resolveAll resolves every pair and reports all misses together.
func resolveAll(r *resolver.Resolver, pairs [][2]string, module string, emit func(kind, name string, h handle.Handle)) error {
	var missing []string
	for _, p := range pairs {
		h, err := lookup(r, p[0], p[1], module)
		if err != nil {
			if isMiss(err) {
				missing = append(missing, p[0]+":"+p[1])
				continue
			}
			return err
		}
		emit(p[0], p[1], h)
	}
	if len(missing) > 0 {
		return errors.NewUnresolvedNamesError(missing)
	}
	return nil
}

func isMiss(err error) bool {
	var e *errors.Error
	return stderrors.As(err, &e) && (e.Kind == errors.KindNotFound || e.Kind == errors.KindMissingPartial)
}

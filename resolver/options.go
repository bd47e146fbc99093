package resolver

import (
	"github.com/wippyai/template-resolver/errors"
	"github.com/wippyai/template-resolver/instrument"
)

// Options configures a Resolver. The feature flags are read once at
// construction.
type Options struct {
	// TemplateOnlyComponents resolves a layout without a component class to a
	// lightweight template-only definition.
	TemplateOnlyComponents bool

	// CustomComponentManagers resolves "component-manager:<id>" for layouts
	// that declare a manager id.
	CustomComponentManagers bool

	// Instrumenter times component definition construction. Nil disables it.
	Instrumenter instrument.Instrumenter

	// OnDiagnostic receives non-fatal diagnostics such as a missing component.
	OnDiagnostic func(*errors.Error)
}

// DefaultOptions enables both feature flags with no instrumentation.
func DefaultOptions() Options {
	return Options{
		TemplateOnlyComponents:  true,
		CustomComponentManagers: true,
	}
}

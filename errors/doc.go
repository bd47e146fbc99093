// Package errors provides structured error types for the template resolver.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the name being resolved, the originating module and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLookup, errors.KindTypeMismatch).
//		Name("format-date").
//		Module("app/templates/index").
//		Detail("factory is not a helper factory").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseLookup, "component", "x-widget")
//	err := errors.MissingPartial("header", "app/templates/index")
//
// Only missing partials are fatal; IsFatal reports it through wrapping.
// All errors implement the standard error interface and support errors.Is/As.
package errors

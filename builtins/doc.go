// Package builtins provides the intrinsic helpers and modifiers that every
// resolver consults before the host registry.
//
// Helpers are plain definition.Helper values created once at init, so
// repeated lookups return the same pointer. Modifiers are only ever
// resolved from this package.
package builtins

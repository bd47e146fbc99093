// Package definition defines the runtime definitions produced by name
// resolution. Every variant implements Definition and is tagged by Kind;
// the VM dispatches on the capability interfaces (ComponentDefinition,
// ModifierManager) rather than on concrete types.
package definition

// Package handle provides the handle table that bridges compiled templates
// and live runtime objects.
//
// Compiled bytecode cannot embed Go pointers, so every definition a template
// refers to is stored in a Table and referenced by a small integer Handle:
//
//	table := handle.NewTable()
//
//	// Allocate is idempotent: the same object always yields the same handle
//	h, _ := table.Allocate(def)
//
//	// Resolve is O(1) and total for handles produced by this table
//	def = table.Resolve(h).(*definition.Component)
//
// # Reserved Handle
//
// Handle 0 (None) is never allocated. Slot 0 holds a sentinel so callers may
// use a zero check as an existence test.
//
// # Lifetime
//
// The table is append-only. Compiled bytecode may reference a handle
// indefinitely, so nothing is ever removed or reused.
package handle

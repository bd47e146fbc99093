// Package vm declares the slice of the opcode VM that resolved definitions
// interact with: references, captured arguments, the dynamic scope and the
// destruction hook. The VM execution loop itself lives outside this module.
package vm

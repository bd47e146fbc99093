// Package template holds the resolver's view of templates: the lookup
// context (Meta), template instances created from precompiled factories,
// and the compile options handed to the external opcode compiler.
//
// Parsing and opcode generation are not part of this module. A Factory wraps
// an already serialized block and binds it to compile options and an owner:
//
//	f := template.NewFactory("app/templates/index", block, template.Meta{ModuleName: "app/templates/index"})
//	tpl := f.Create(template.Injections{Options: opts, Owner: registry})
package template

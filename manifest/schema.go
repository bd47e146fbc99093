package manifest

import "github.com/zclconf/go-cty/cty"

// File is the top-level structure of a registry manifest.
type File struct {
	Templates  []*Template  `hcl:"template,block"`
	Partials   []*Partial   `hcl:"partial,block"`
	Components []*Component `hcl:"component,block"`
	Managers   []*Manager   `hcl:"component_manager,block"`
	Helpers    []*Helper    `hcl:"helper,block"`

	dir string
}

// Template registers "template:<name>". Component layouts use names of the
// form "components/<component>".
type Template struct {
	Name    string `hcl:"name,label"`
	Source  string `hcl:"source,optional"`
	Manager string `hcl:"manager,optional"`
	Module  string `hcl:"module,optional"`
}

// Partial registers a partial template. "nav/menu" is stored as
// "template:nav/_menu".
type Partial struct {
	Name   string `hcl:"name,label"`
	Source string `hcl:"source,optional"`
}

// Component registers "component:<name>". Attrs seed every instance.
type Component struct {
	Name   string     `hcl:"name,label"`
	Module string     `hcl:"module,optional"`
	Attrs  *cty.Value `hcl:"attrs,optional"`
}

// Manager registers "component-manager:<name>".
type Manager struct {
	Name string `hcl:"name,label"`
}

// Helper registers "helper:<name>" as either a constant value or a wasm
// export. Exactly one of Value and Wasm must be set.
type Helper struct {
	Name   string     `hcl:"name,label"`
	Module string     `hcl:"module,optional"`
	Value  *cty.Value `hcl:"value,optional"`
	Wasm   *Wasm      `hcl:"wasm,block"`
}

// Wasm binds a helper to a core wasm export.
type Wasm struct {
	Path   string   `hcl:"path"`
	Export string   `hcl:"export,optional"`
	Params []string `hcl:"params,optional"`
	Result string   `hcl:"result,optional"`
}

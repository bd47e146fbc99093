package resolver

import "github.com/wippyai/template-resolver/template"

var (
	inlineMacros = []string{"outlet", "component", "render", "mount", "input", "textarea"}
	blockMacros  = []string{"component"}
)

func populateMacros(m *template.Macros) *template.Macros {
	for _, name := range inlineMacros {
		m.AddInline(name)
	}
	for _, name := range blockMacros {
		m.AddBlock(name)
	}
	return m
}

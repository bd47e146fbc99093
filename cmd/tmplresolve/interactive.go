package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/template-resolver/resolver"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historySize = 12

type interactiveModel struct {
	r        *resolver.Resolver
	manifest string
	module   string
	input    textinput.Model
	history  []entry
	kind     int
}

type entry struct {
	kind   string
	name   string
	result string
	err    error
}

func newInteractiveModel(r *resolver.Resolver, manifest, module string) *interactiveModel {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.Prompt = "> "
	ti.Width = 40
	ti.Focus()
	return &interactiveModel{
		r:        r,
		manifest: manifest,
		module:   module,
		input:    ti,
		kind:     2,
	}
}

func runInteractive(r *resolver.Resolver, manifest, module string) error {
	p := tea.NewProgram(newInteractiveModel(r, manifest, module), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.kind = (m.kind + 1) % len(kinds)
			return m, nil

		case "shift+tab":
			m.kind = (m.kind + len(kinds) - 1) % len(kinds)
			return m, nil

		case "enter":
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				return m, nil
			}
			m.resolve(kinds[m.kind], name)
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *interactiveModel) resolve(kind, name string) {
	e := entry{kind: kind, name: name}
	h, err := lookup(m.r, kind, name, m.module)
	if err != nil {
		e.err = err
	} else {
		e.result = fmt.Sprintf("#%d %s", h, describe(m.r, m.r.Resolve(h)))
	}
	m.history = append(m.history, e)
	if len(m.history) > historySize {
		m.history = m.history[len(m.history)-historySize:]
	}
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Template Resolver"))
	if m.manifest != "" {
		b.WriteString(" ")
		b.WriteString(m.manifest)
	}
	if m.module != "" {
		b.WriteString(" ")
		b.WriteString(kindStyle.Render("module=" + m.module))
	}
	b.WriteString("\n\n")

	for i, k := range kinds {
		if i == m.kind {
			b.WriteString(selectedStyle.Render(" " + k + " "))
		} else {
			b.WriteString(" " + k + " ")
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	for i := len(m.history) - 1; i >= 0; i-- {
		e := m.history[i]
		b.WriteString(kindStyle.Render(fmt.Sprintf("%-9s", e.kind)))
		b.WriteString(" ")
		b.WriteString(nameStyle.Render(e.name))
		b.WriteString("  ")
		if e.err != nil {
			b.WriteString(errorStyle.Render(e.err.Error()))
		} else {
			b.WriteString(resultStyle.Render(e.result))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab kind • enter resolve • esc quit"))
	return b.String()
}

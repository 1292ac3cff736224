// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/template"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/util"
)

// templatesPanel walks the user through the catalog: pick a template, fill
// its variables in declaration order, and hand the resolved prompt back.
type templatesPanel struct {
	theme   *Theme
	catalog *template.Catalog

	browsing bool
	items    []*template.Template
	cursor   int

	active   *template.Template
	varIndex int
	values   map[string]string
	input    textinput.Model
}

func newTemplatesPanel(theme *Theme, catalog *template.Catalog) *templatesPanel {
	ti := textinput.New()
	ti.CharLimit = 2048
	return &templatesPanel{theme: theme, catalog: catalog, input: ti}
}

// open resets the panel to the browse phase.
func (p *templatesPanel) open() {
	p.items = p.catalog.All()
	p.cursor = 0
	p.browsing = true
	p.active = nil
}

func (p *templatesPanel) moveUp() {
	if p.browsing && p.cursor > 0 {
		p.cursor--
	}
}

func (p *templatesPanel) moveDown() {
	if p.browsing && p.cursor < len(p.items)-1 {
		p.cursor++
	}
}

// choose enters the fill phase for the template under the cursor.
func (p *templatesPanel) choose() {
	if !p.browsing || p.cursor >= len(p.items) {
		return
	}
	p.active = p.items[p.cursor]
	p.browsing = false
	p.varIndex = 0
	p.values = make(map[string]string)
	p.focusCurrentVar()
}

func (p *templatesPanel) focusCurrentVar() {
	p.input.SetValue("")
	if p.varIndex < len(p.active.Variables) {
		v := p.active.Variables[p.varIndex]
		p.input.Placeholder = v.Placeholder
		if v.Kind == template.KindSelect && len(v.Options) > 0 {
			p.input.Placeholder = strings.Join(v.Options, " / ")
		}
	}
	p.input.Focus()
}

// commitVar stores the current value and advances. When the last variable
// is filled it resolves the template and returns (prompt, true).
func (p *templatesPanel) commitVar() (string, bool) {
	if p.active == nil {
		return "", false
	}
	if p.varIndex < len(p.active.Variables) {
		p.values[p.active.Variables[p.varIndex].Name] = p.input.Value()
		p.varIndex++
	}
	if p.varIndex < len(p.active.Variables) {
		p.focusCurrentVar()
		return "", false
	}

	prompt, ok := p.catalog.Use(p.active.ID, p.values)
	if !ok {
		return "", false
	}
	p.input.Blur()
	return prompt, true
}

// back returns from the fill phase to browsing; reports false when already
// browsing so the caller can close the panel.
func (p *templatesPanel) back() bool {
	if p.browsing {
		return false
	}
	p.browsing = true
	p.active = nil
	p.input.Blur()
	return true
}

func (p *templatesPanel) render() string {
	var b strings.Builder
	if p.browsing {
		b.WriteString(p.theme.PanelTitle.Render("Templates") + "\n\n")
		for i, t := range p.items {
			line := fmt.Sprintf("%-24s %-10s used %d×", util.Truncate(t.Title, 24), t.Category, t.UsageCount)
			if i == p.cursor {
				b.WriteString(p.theme.FieldActive.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
		b.WriteString("\n" + p.theme.HelpText.Render("Up/Down select · Enter choose · Esc close"))
		return p.theme.PanelBorder.Render(b.String())
	}

	b.WriteString(p.theme.PanelTitle.Render(p.active.Title) + "\n")
	b.WriteString(p.theme.Meta.Render(p.active.Description) + "\n\n")

	for i, v := range p.active.Variables {
		label := v.Label
		if v.Required {
			label += " *"
		}
		switch {
		case i < p.varIndex:
			b.WriteString(fmt.Sprintf("  %-20s %s\n", label, p.values[v.Name]))
		case i == p.varIndex:
			b.WriteString(p.theme.FieldActive.Render("> "+fmt.Sprintf("%-20s", label)) + " " + p.input.View() + "\n")
		default:
			b.WriteString(p.theme.FieldLabel.Render(fmt.Sprintf("  %-20s", label)) + "\n")
		}
	}
	b.WriteString("\n" + p.theme.HelpText.Render("Enter next field · Esc back"))
	return p.theme.PanelBorder.Render(b.String())
}

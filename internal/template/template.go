// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package template

import "strings"

// VariableKind is the input control a variable asks for.
type VariableKind string

// Variable input kinds.
const (
	KindText     VariableKind = "text"
	KindTextarea VariableKind = "textarea"
	KindSelect   VariableKind = "select"
	KindNumber   VariableKind = "number"
)

// Variable declares one named placeholder of a template.
type Variable struct {
	Name        string       `json:"name"`
	Label       string       `json:"label"`
	Kind        VariableKind `json:"kind"`
	Placeholder string       `json:"placeholder,omitempty"`
	Options     []string     `json:"options,omitempty"`
	Required    bool         `json:"required"`
}

// Template is a reusable prompt with declared variables. The prompt text
// references variables as {{name}}.
type Template struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Prompt      string     `json:"prompt"`
	Variables   []Variable `json:"variables"`
	IsPublic    bool       `json:"is_public"`
	CreatedBy   string     `json:"created_by"`
	UsageCount  int        `json:"usage_count"`
}

// Resolve substitutes every occurrence of each declared variable's
// placeholder with its collected value. Declared variables without a value
// become the empty string; placeholders for undeclared names are left
// verbatim.
func (t *Template) Resolve(values map[string]string) string {
	prompt := t.Prompt
	for _, v := range t.Variables {
		prompt = strings.ReplaceAll(prompt, "{{"+v.Name+"}}", values[v.Name])
	}
	return prompt
}

// MissingRequired lists declared required variables with no collected
// value, in declaration order. Informational: Resolve does not enforce it.
func (t *Template) MissingRequired(values map[string]string) []string {
	var missing []string
	for _, v := range t.Variables {
		if v.Required && strings.TrimSpace(values[v.Name]) == "" {
			missing = append(missing, v.Name)
		}
	}
	return missing
}

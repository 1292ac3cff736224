// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// settingsField enumerates the editable rows of the settings panel.
type settingsField int

const (
	fieldModel settingsField = iota
	fieldTemperature
	fieldMaxTokens
	fieldSystemPrompt
	fieldAutoSave
	fieldDarkMode
	fieldFontSize
	fieldLanguage
	fieldVoice
	fieldAutoTranslate
	fieldCount
)

// settingsPanel edits a working copy of the settings; the caller applies
// it when the panel closes.
type settingsPanel struct {
	theme   *Theme
	values  model.ChatSettings
	cursor  settingsField
	editing bool
	input   textinput.Model
}

func newSettingsPanel(theme *Theme) *settingsPanel {
	ti := textinput.New()
	ti.CharLimit = 512
	return &settingsPanel{theme: theme, input: ti}
}

// open seeds the working copy.
func (p *settingsPanel) open(s model.ChatSettings) {
	p.values = s
	p.cursor = fieldModel
	p.editing = false
}

// result returns the edited settings.
func (p *settingsPanel) result() model.ChatSettings {
	return p.values
}

func (p *settingsPanel) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *settingsPanel) moveDown() {
	if p.cursor < fieldCount-1 {
		p.cursor++
	}
}

// adjust changes the value under the cursor by one step. Text fields enter
// edit mode instead.
func (p *settingsPanel) adjust(delta int) {
	switch p.cursor {
	case fieldModel:
		p.cycleModel(delta)
	case fieldTemperature:
		p.values.Temperature += 0.1 * float64(delta)
		if p.values.Temperature < 0 {
			p.values.Temperature = 0
		}
		if p.values.Temperature > 2 {
			p.values.Temperature = 2
		}
	case fieldMaxTokens:
		p.values.MaxTokens += 256 * delta
		if p.values.MaxTokens < 256 {
			p.values.MaxTokens = 256
		}
	case fieldAutoSave:
		p.values.AutoSave = !p.values.AutoSave
	case fieldDarkMode:
		p.values.DarkMode = !p.values.DarkMode
	case fieldFontSize:
		p.cycleFontSize(delta)
	case fieldVoice:
		p.values.VoiceEnabled = !p.values.VoiceEnabled
	case fieldAutoTranslate:
		p.values.AutoTranslate = !p.values.AutoTranslate
	case fieldSystemPrompt, fieldLanguage:
		p.startEdit()
	}
}

// startEdit begins text editing for the free-text fields.
func (p *settingsPanel) startEdit() {
	switch p.cursor {
	case fieldSystemPrompt:
		p.input.SetValue(p.values.SystemPrompt)
	case fieldLanguage:
		p.input.SetValue(p.values.Language)
	default:
		return
	}
	p.editing = true
	p.input.Focus()
	p.input.CursorEnd()
}

// commitEdit stores the edited text and leaves edit mode.
func (p *settingsPanel) commitEdit() {
	switch p.cursor {
	case fieldSystemPrompt:
		p.values.SystemPrompt = p.input.Value()
	case fieldLanguage:
		p.values.Language = p.input.Value()
	}
	p.editing = false
	p.input.Blur()
}

func (p *settingsPanel) cancelEdit() {
	p.editing = false
	p.input.Blur()
}

func (p *settingsPanel) cycleModel(delta int) {
	models := model.AvailableModels()
	idx := 0
	for i, m := range models {
		if m.ID == p.values.Model {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(models)) % len(models)
	p.values.Model = models[idx].ID
}

func (p *settingsPanel) cycleFontSize(delta int) {
	order := []model.FontSize{model.FontSmall, model.FontMedium, model.FontLarge}
	idx := 1
	for i, f := range order {
		if f == p.values.FontSize {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(order)) % len(order)
	p.values.FontSize = order[idx]
}

func (p *settingsPanel) render() string {
	rows := []struct {
		field settingsField
		label string
		value string
	}{
		{fieldModel, "Model", p.modelName()},
		{fieldTemperature, "Temperature", fmt.Sprintf("%.1f", p.values.Temperature)},
		{fieldMaxTokens, "Max tokens", fmt.Sprintf("%d", p.values.MaxTokens)},
		{fieldSystemPrompt, "System prompt", truncateValue(p.values.SystemPrompt)},
		{fieldAutoSave, "Auto-save", onOff(p.values.AutoSave)},
		{fieldDarkMode, "Dark mode", onOff(p.values.DarkMode)},
		{fieldFontSize, "Font size", string(p.values.FontSize)},
		{fieldLanguage, "Language", p.values.Language},
		{fieldVoice, "Voice input", onOff(p.values.VoiceEnabled)},
		{fieldAutoTranslate, "Auto-translate", onOff(p.values.AutoTranslate)},
	}

	var b strings.Builder
	b.WriteString(p.theme.PanelTitle.Render("Settings") + "\n\n")
	for _, row := range rows {
		label := p.theme.FieldLabel.Render(fmt.Sprintf("%-14s", row.label))
		value := row.value
		if row.field == p.cursor {
			if p.editing {
				value = p.input.View()
			}
			b.WriteString(p.theme.FieldActive.Render("> ") + label + " " + value + "\n")
		} else {
			b.WriteString("  " + label + " " + value + "\n")
		}
	}
	b.WriteString("\n" + p.theme.HelpText.Render("Up/Down select · Left/Right or Enter change · Esc close"))
	return p.theme.PanelBorder.Render(b.String())
}

func (p *settingsPanel) modelName() string {
	for _, m := range model.AvailableModels() {
		if m.ID == p.values.Model {
			return m.Name
		}
	}
	return p.values.Model
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func truncateValue(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) > 40 {
		return string(runes[:40]) + "…"
	}
	return s
}

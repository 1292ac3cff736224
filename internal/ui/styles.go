// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles for the chat interface.
type Theme struct {
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Timestamp      lipgloss.Style
	Meta           lipgloss.Style
	Typing         lipgloss.Style
	ErrorText      lipgloss.Style

	SidebarTitle    lipgloss.Style
	SessionItem     lipgloss.Style
	SessionSelected lipgloss.Style
	SessionArchived lipgloss.Style

	PanelBorder  lipgloss.Style
	PanelTitle   lipgloss.Style
	FieldLabel   lipgloss.Style
	FieldActive  lipgloss.Style
	StatusBar    lipgloss.Style
	HelpText     lipgloss.Style
}

// NewTheme builds the style set for the given theme name. "light" swaps
// the foreground accents; anything else gets the dark palette.
func NewTheme(name string) *Theme {
	accent := lipgloss.Color("12")
	subtle := lipgloss.Color("241")
	if name == "light" {
		accent = lipgloss.Color("4")
		subtle = lipgloss.Color("245")
	}

	return &Theme{
		UserLabel:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		AssistantLabel: lipgloss.NewStyle().Bold(true).Foreground(accent),
		Timestamp:      lipgloss.NewStyle().Foreground(subtle),
		Meta:           lipgloss.NewStyle().Foreground(subtle).Italic(true),
		Typing:         lipgloss.NewStyle().Foreground(subtle).Italic(true),
		ErrorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),

		SidebarTitle:    lipgloss.NewStyle().Bold(true).Underline(true),
		SessionItem:     lipgloss.NewStyle().PaddingLeft(1),
		SessionSelected: lipgloss.NewStyle().PaddingLeft(1).Bold(true).Foreground(accent),
		SessionArchived: lipgloss.NewStyle().PaddingLeft(1).Faint(true),

		PanelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		PanelTitle:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		FieldLabel:  lipgloss.NewStyle().Foreground(subtle),
		FieldActive: lipgloss.NewStyle().Bold(true).Foreground(accent),
		StatusBar:   lipgloss.NewStyle().Foreground(subtle),
		HelpText:    lipgloss.NewStyle().Foreground(subtle),
	}
}

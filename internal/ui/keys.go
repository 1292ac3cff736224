// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keyboard bindings for the chat interface.
type KeyMap struct {
	Submit      key.Binding
	Cancel      key.Binding
	Quit        key.Binding
	NewSession  key.Binding
	Search      key.Binding
	SwitchPane  key.Binding
	Settings    key.Binding
	Templates   key.Binding
	Export      key.Binding
	Delete      key.Binding
	Archive     key.Binding
	Bookmark    key.Binding
	React       key.Binding
	Clear       key.Binding
	Voice       key.Binding
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Help        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send message"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "stop generation / close panel"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
		NewSession: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new session"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "search sessions"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "settings"),
		),
		Templates: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "templates"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export session"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "delete message / session"),
		),
		Archive: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "archive session"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark last message"),
		),
		React: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "react to last message"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear chat"),
		),
		Voice: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "voice input"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("Up", "scroll / previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("Down", "scroll / next"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "toggle help"),
		),
	}
}

// ShortHelp returns the bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.NewSession, k.SwitchPane, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Cancel, k.Clear, k.Bookmark, k.React, k.Voice},
		{k.NewSession, k.SwitchPane, k.Search, k.Delete, k.Archive},
		{k.Settings, k.Templates, k.Export, k.Help, k.Quit},
	}
}

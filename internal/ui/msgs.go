// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

// Bubble Tea messages emitted by commands.

// sendSettledMsg signals that a SendMessage turn finished, in any branch.
// Err carries a non-cancellation failure; the conversation already shows
// the error reply, so the UI only logs and re-renders.
type sendSettledMsg struct {
	err error
}

// exportDoneMsg reports the outcome of a session export.
type exportDoneMsg struct {
	path string
	err  error
}

// transcriptMsg carries a settled voice transcript.
type transcriptMsg struct {
	text string
	err  error
}

// ConfigReloadedMsg is delivered from outside the program loop when the
// config file changes on disk. Send it with Program.Send.
type ConfigReloadedMsg struct {
	Theme      string
	ShowTokens bool
}

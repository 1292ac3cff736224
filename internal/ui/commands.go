// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/export"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/voice"
)

// sendCmd runs one full conversation turn on a command goroutine. The
// engine blocks until the request settles; the session store is reconciled
// afterwards so the settled messages land in the current session.
func (a *App) sendCmd(content string, attachments []model.Attachment) tea.Cmd {
	return func() tea.Msg {
		err := a.engine.SendMessage(context.Background(), content, attachments)
		a.store.Reconcile()
		return sendSettledMsg{err: err}
	}
}

// exportCmd writes the current session to the export directory.
func (a *App) exportCmd(s *model.ChatSession) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteSession(s, a.exportDir)
		return exportDoneMsg{path: path, err: err}
	}
}

// transcribeCmd runs one voice capture and delivers the transcript. A
// result settling after the session was dismissed is dropped by the
// Update handler via the session's Accept check.
func (a *App) transcribeCmd(session *voice.Session) tea.Cmd {
	return func() tea.Msg {
		text, err := a.transcriber.Start(session.Context())
		if !session.Accept() {
			return nil
		}
		return transcriptMsg{text: text, err: err}
	}
}

// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/sessions"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/util"
)

// sidebar is the session list pane: a filtered, sorted view with a cursor.
type sidebar struct {
	theme  *Theme
	filter sessions.Filter
	view   []*model.ChatSession
	cursor int
	width  int
	height int
}

func newSidebar(theme *Theme) *sidebar {
	return &sidebar{theme: theme, width: 30, height: 20}
}

// refresh recomputes the view, keeping the cursor on the same session
// where possible.
func (s *sidebar) refresh(store *sessions.Store) {
	var keepID string
	if s.cursor < len(s.view) {
		keepID = s.view[s.cursor].ID
	}

	s.view = store.View(s.filter)

	s.cursor = 0
	for i, sess := range s.view {
		if sess.ID == keepID {
			s.cursor = i
			break
		}
	}
}

// selected returns the session under the cursor, or nil.
func (s *sidebar) selected() *model.ChatSession {
	if s.cursor < 0 || s.cursor >= len(s.view) {
		return nil
	}
	return s.view[s.cursor]
}

func (s *sidebar) moveUp() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *sidebar) moveDown() {
	if s.cursor < len(s.view)-1 {
		s.cursor++
	}
}

// cycleMode advances the filter mode: all -> bookmarked -> archived.
func (s *sidebar) cycleMode() {
	switch s.filter.Mode {
	case sessions.ModeBookmarked:
		s.filter.Mode = sessions.ModeArchived
	case sessions.ModeArchived:
		s.filter.Mode = sessions.ModeAll
	default:
		s.filter.Mode = sessions.ModeBookmarked
	}
}

func (s *sidebar) render(currentID string, searching bool, searchInput string) string {
	var b strings.Builder

	title := "Sessions"
	if s.filter.Mode == sessions.ModeBookmarked {
		title = "Sessions · bookmarked"
	} else if s.filter.Mode == sessions.ModeArchived {
		title = "Sessions · archived"
	}
	b.WriteString(s.theme.SidebarTitle.Render(title) + "\n")

	if searching {
		b.WriteString("/" + searchInput + "\n")
	} else if s.filter.Query != "" {
		b.WriteString(s.theme.Meta.Render("/"+s.filter.Query) + "\n")
	}

	if len(s.view) == 0 {
		b.WriteString(s.theme.Meta.Render("no matching sessions") + "\n")
		return b.String()
	}

	maxRows := s.height - 3
	if maxRows < 1 {
		maxRows = 1
	}
	start := 0
	if s.cursor >= maxRows {
		start = s.cursor - maxRows + 1
	}

	for i := start; i < len(s.view) && i < start+maxRows; i++ {
		sess := s.view[i]
		// Derived titles can carry newlines from the source message.
		line := runewidth.Truncate(util.SingleLine(sess.Title), s.width-6, "…")
		if sess.MessageCount() > 0 {
			line = fmt.Sprintf("%s (%d)", line, sess.MessageCount())
		}
		if sess.ID == currentID {
			line = "● " + line
		} else {
			line = "  " + line
		}

		style := s.theme.SessionItem
		if sess.IsArchived {
			style = s.theme.SessionArchived
		}
		if i == s.cursor {
			style = s.theme.SessionSelected
		}
		b.WriteString(style.Render(line) + "\n")
	}

	if sel := s.selected(); sel != nil && sel.MessageCount() > 0 {
		last := sel.Messages[sel.MessageCount()-1]
		b.WriteString(s.theme.Meta.Render(last.Preview(s.width-2)) + "\n")
	}
	return b.String()
}

// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessions

import (
	"sort"
	"strings"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// FilterMode selects which sessions a view includes.
type FilterMode string

// Filter modes for the session list view.
const (
	ModeAll        FilterMode = "all"
	ModeBookmarked FilterMode = "bookmarked"
	ModeArchived   FilterMode = "archived"
)

// SortOrder selects the ordering of a view.
type SortOrder string

// Sort orders for the session list view.
const (
	SortRecent SortOrder = "recent"
	SortTitle  SortOrder = "title"
)

// Filter is a read-only view description over the session list. The zero
// value means: no query, every session, most recently updated first.
type Filter struct {
	Query string
	Mode  FilterMode
	Sort  SortOrder
}

// Apply computes the view: a session is included when its title or any
// message content contains the query case-insensitively and it matches the
// mode. The input is not modified.
func (f Filter) Apply(sessions []*model.ChatSession) []*model.ChatSession {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]*model.ChatSession, 0, len(sessions))
	for _, s := range sessions {
		if !f.matchesMode(s) {
			continue
		}
		if query != "" && !matchesQuery(s, query) {
			continue
		}
		out = append(out, s)
	}

	switch f.Sort {
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Title < out[j].Title
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	}
	return out
}

func (f Filter) matchesMode(s *model.ChatSession) bool {
	switch f.Mode {
	case ModeArchived:
		return s.IsArchived
	case ModeBookmarked:
		return s.HasBookmark()
	default:
		return true
	}
}

func matchesQuery(s *model.ChatSession, query string) bool {
	if strings.Contains(strings.ToLower(s.Title), query) {
		return true
	}
	for _, m := range s.Messages {
		if strings.Contains(strings.ToLower(m.Content), query) {
			return true
		}
	}
	return false
}

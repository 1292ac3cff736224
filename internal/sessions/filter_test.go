// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessions

import (
	"testing"
	"time"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

func session(title string, opts ...func(*model.ChatSession)) *model.ChatSession {
	s := model.NewChatSession(model.DefaultSettings())
	s.Title = title
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func archived(s *model.ChatSession)  { s.IsArchived = true }
func updatedAt(t time.Time) func(*model.ChatSession) {
	return func(s *model.ChatSession) { s.UpdatedAt = t }
}
func withMessage(content string, bookmarked bool) func(*model.ChatSession) {
	return func(s *model.ChatSession) {
		m := model.NewUserMessage(content, nil)
		m.IsBookmarked = bookmarked
		s.Messages = append(s.Messages, m)
	}
}

func titles(sessions []*model.ChatSession) []string {
	out := make([]string, len(sessions))
	for i, s := range sessions {
		out[i] = s.Title
	}
	return out
}

func TestFilter_ArchivedMode(t *testing.T) {
	input := []*model.ChatSession{
		session("Foo"),
		session("Bar", archived),
	}

	got := Filter{Mode: ModeArchived}.Apply(input)
	if len(got) != 1 || got[0].Title != "Bar" {
		t.Errorf("Archived view = %v, want exactly [Bar]", titles(got))
	}

	all := Filter{Mode: ModeAll}.Apply(input)
	if len(all) != 2 {
		t.Errorf("All view = %v, want both sessions", titles(all))
	}
}

func TestFilter_BookmarkedMode(t *testing.T) {
	input := []*model.ChatSession{
		session("plain", withMessage("hello", false)),
		session("starred", withMessage("hello", true)),
	}

	got := Filter{Mode: ModeBookmarked}.Apply(input)
	if len(got) != 1 || got[0].Title != "starred" {
		t.Errorf("Bookmarked view = %v, want exactly [starred]", titles(got))
	}
}

func TestFilter_QueryMatchesTitleOrContent(t *testing.T) {
	input := []*model.ChatSession{
		session("Trip Planning"),
		session("Groceries", withMessage("Remember the TRIP snacks", false)),
		session("Work notes", withMessage("standup summary", false)),
	}

	got := Filter{Query: "trip"}.Apply(input)
	if len(got) != 2 {
		t.Fatalf("Query view = %v, want title and content matches", titles(got))
	}
	for _, s := range got {
		if s.Title == "Work notes" {
			t.Error("Non-matching session included")
		}
	}

	if n := len(Filter{Query: "nowhere"}.Apply(input)); n != 0 {
		t.Errorf("Expected no matches, got %d", n)
	}
}

func TestFilter_SortOrders(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []*model.ChatSession{
		session("beta", updatedAt(base.Add(time.Hour))),
		session("alpha", updatedAt(base.Add(2*time.Hour))),
		session("gamma", updatedAt(base)),
	}

	recent := Filter{}.Apply(input)
	if got := titles(recent); got[0] != "alpha" || got[1] != "beta" || got[2] != "gamma" {
		t.Errorf("Recent order = %v", got)
	}

	byTitle := Filter{Sort: SortTitle}.Apply(input)
	if got := titles(byTitle); got[0] != "alpha" || got[1] != "beta" || got[2] != "gamma" {
		t.Errorf("Title order = %v", got)
	}

	// Input order must be untouched.
	if input[0].Title != "beta" {
		t.Error("Apply mutated its input")
	}
}

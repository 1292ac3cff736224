// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTitle is the title of a session before its first user
// message arrives.
const DefaultSessionTitle = "New Chat"

// titleMaxLen is the number of leading characters kept when deriving a
// session title from the first user message.
const titleMaxLen = 50

// =============================================================================
// CHAT SESSION TYPE
// =============================================================================

// ChatSession is a titled, ordered conversation. Settings is a snapshot of
// the configuration at creation time; sessions do not retroactively pick up
// global settings changes.
type ChatSession struct {
	ID         string       `json:"id"`
	Title      string       `json:"title"`
	Messages   []*Message   `json:"messages"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
	IsArchived bool         `json:"is_archived,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	Model      string       `json:"model"`
	Settings   ChatSettings `json:"settings"`
}

// NewChatSession creates an empty session snapshotting the given settings.
func NewChatSession(settings ChatSettings) *ChatSession {
	now := time.Now()
	return &ChatSession{
		ID:        uuid.NewString(),
		Title:     DefaultSessionTitle,
		Messages:  make([]*Message, 0),
		CreatedAt: now,
		UpdatedAt: now,
		Model:     settings.Model,
		Settings:  settings,
	}
}

// =============================================================================
// SESSION METHODS
// =============================================================================

// Touch bumps the UpdatedAt timestamp.
func (s *ChatSession) Touch() {
	s.UpdatedAt = time.Now()
}

// ToggleArchived flips the archived flag and returns the new state.
func (s *ChatSession) ToggleArchived() bool {
	s.IsArchived = !s.IsArchived
	s.Touch()
	return s.IsArchived
}

// SetMessages replaces the session's message list and bumps UpdatedAt.
func (s *ChatSession) SetMessages(msgs []*Message) {
	s.Messages = msgs
	s.Touch()
}

// HasBookmark reports whether any message in the session is bookmarked.
func (s *ChatSession) HasBookmark() bool {
	for _, m := range s.Messages {
		if m.IsBookmarked {
			return true
		}
	}
	return false
}

// MessageCount returns the number of messages.
func (s *ChatSession) MessageCount() int {
	return len(s.Messages)
}

// Clone creates a deep copy of the session.
func (s *ChatSession) Clone() *ChatSession {
	clone := *s
	clone.Messages = make([]*Message, len(s.Messages))
	for i, m := range s.Messages {
		msgCopy := *m
		clone.Messages[i] = &msgCopy
	}
	clone.Tags = append([]string(nil), s.Tags...)
	return &clone
}

// DeriveTitle produces a session title from the first user message: the
// first 50 characters with an ellipsis appended when the content is longer.
// Truncation is rune-based to handle Unicode correctly.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) > titleMaxLen {
		return string(runes[:titleMaxLen]) + "..."
	}
	return content
}

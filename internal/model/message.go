// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// AttachmentKind discriminates the attachment variants.
type AttachmentKind string

const (
	AttachmentImage AttachmentKind = "image"
	AttachmentCode  AttachmentKind = "code"
	AttachmentFile  AttachmentKind = "file"
)

// Attachment is a file inlined into a message. Content holds a data URL;
// no upload occurs. Language is set only for code attachments.
type Attachment struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Kind     AttachmentKind `json:"kind"`
	Content  string         `json:"content"`
	Size     int64          `json:"size"`
	Language string         `json:"language,omitempty"`
}

// =============================================================================
// REACTION TYPE
// =============================================================================

// Reaction aggregates reactions of a single emoji on a message.
// A given emoji appears at most once per message; Count only grows.
type Reaction struct {
	Emoji string   `json:"emoji"`
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single turn in a conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// IsTyping marks the transient assistant placeholder for an in-flight
	// generation. It is always replaced or removed before the request settles.
	IsTyping bool `json:"is_typing,omitempty"`

	// Set on assistant messages once a response is received.
	Tokens int    `json:"tokens,omitempty"`
	Model  string `json:"model,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`
	Reactions   []Reaction   `json:"reactions,omitempty"`

	IsBookmarked bool `json:"is_bookmarked,omitempty"`

	// Edit tracking. OriginalContent holds the immediately prior value only,
	// overwritten on each successive edit.
	IsEdited        bool   `json:"is_edited,omitempty"`
	OriginalContent string `json:"original_content,omitempty"`
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string, attachments []Attachment) *Message {
	return &Message{
		ID:          uuid.NewString(),
		Role:        RoleUser,
		Content:     content,
		Timestamp:   time.Now(),
		Attachments: attachments,
	}
}

// NewTypingMessage creates the assistant placeholder shown while a
// generation is in flight.
func NewTypingMessage() *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		IsTyping:  true,
	}
}

// NewAssistantMessage creates a settled assistant message from a response.
func NewAssistantMessage(content string, tokens int, modelID string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      RoleAssistant,
		Content:   content,
		Timestamp: time.Now(),
		Tokens:    tokens,
		Model:     modelID,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// Edit replaces the content, preserving the pre-edit value in
// OriginalContent. Only the immediately prior version is recoverable.
func (m *Message) Edit(newContent string) {
	m.OriginalContent = m.Content
	m.Content = newContent
	m.IsEdited = true
}

// ToggleBookmark flips the bookmark flag and returns the new state.
func (m *Message) ToggleBookmark() bool {
	m.IsBookmarked = !m.IsBookmarked
	return m.IsBookmarked
}

// React records a reaction by user for the given emoji. An existing record
// is incremented and the user appended; duplicates are permitted. There is
// no removal operation.
func (m *Message) React(emoji, user string) {
	for i := range m.Reactions {
		if m.Reactions[i].Emoji == emoji {
			m.Reactions[i].Count++
			m.Reactions[i].Users = append(m.Reactions[i].Users, user)
			return
		}
	}
	m.Reactions = append(m.Reactions, Reaction{
		Emoji: emoji,
		Count: 1,
		Users: []string{user},
	})
}

// Preview returns a truncated, single-line preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	content := m.Content
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	return string(runes[:maxLen-3]) + "..."
}

// IsEmpty returns true if the message has no content and no attachments.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0 && len(m.Attachments) == 0
}

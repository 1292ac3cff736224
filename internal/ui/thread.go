// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-runewidth"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// thread renders the message list into viewport content.
type thread struct {
	theme      *Theme
	width      int
	showTokens bool
	markdown   *glamour.TermRenderer
}

func newThread(theme *Theme, showTokens bool) *thread {
	return &thread{theme: theme, width: 80, showTokens: showTokens}
}

// setWidth rebuilds the markdown renderer for the new wrap width.
func (t *thread) setWidth(width int) {
	if width < 20 {
		width = 20
	}
	t.width = width
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		t.markdown = renderer
	}
}

// render produces the full thread view. typingFrame is the spinner frame
// shown on typing placeholders.
func (t *thread) render(messages []*model.Message, typingFrame string) string {
	if len(messages) == 0 {
		return t.theme.Meta.Render("No messages yet. Type below to start the conversation.")
	}

	var b strings.Builder
	for i, m := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		t.renderMessage(&b, m, typingFrame)
	}
	return b.String()
}

func (t *thread) renderMessage(b *strings.Builder, m *model.Message, typingFrame string) {
	label := t.theme.AssistantLabel.Render(m.Role.DisplayName())
	if m.Role == model.RoleUser {
		label = t.theme.UserLabel.Render(m.Role.DisplayName())
	}
	header := label + " " + t.theme.Timestamp.Render(m.Timestamp.Format("15:04"))
	if m.IsBookmarked {
		header += " " + t.theme.Meta.Render("★")
	}
	if m.IsEdited {
		header += " " + t.theme.Meta.Render("(edited)")
	}
	b.WriteString(header + "\n")

	if m.IsTyping {
		b.WriteString(t.theme.Typing.Render(typingFrame+" thinking...") + "\n")
		return
	}

	b.WriteString(t.renderContent(m) + "\n")

	for _, att := range m.Attachments {
		line := fmt.Sprintf("· %s (%s, %s)", att.Name, att.Kind, humanSize(att.Size))
		b.WriteString(t.theme.Meta.Render(line) + "\n")
	}

	if len(m.Reactions) > 0 {
		var parts []string
		for _, r := range m.Reactions {
			parts = append(parts, fmt.Sprintf("%s %d", r.Emoji, r.Count))
		}
		b.WriteString(t.theme.Meta.Render(strings.Join(parts, "  ")) + "\n")
	}

	if t.showTokens && m.Role == model.RoleAssistant && m.Tokens > 0 {
		meta := fmt.Sprintf("%d tokens", m.Tokens)
		if m.Model != "" {
			meta += " · " + m.Model
		}
		b.WriteString(t.theme.Meta.Render(meta) + "\n")
	}
}

// renderContent formats the message body: assistant messages go through
// the markdown renderer, user messages are word-wrapped verbatim.
func (t *thread) renderContent(m *model.Message) string {
	if m.Role == model.RoleAssistant && t.markdown != nil {
		if out, err := t.markdown.Render(m.Content); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return wrap(m.Content, t.width)
}

// wrap soft-wraps text at width using display cell widths, so wide
// characters do not overflow the viewport.
func wrap(s string, width int) string {
	var b strings.Builder
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(wrapLine(line, width))
	}
	return b.String()
}

func wrapLine(line string, width int) string {
	if runewidth.StringWidth(line) <= width {
		return line
	}

	var b strings.Builder
	col := 0
	for _, r := range line {
		w := runewidth.RuneWidth(r)
		if col+w > width {
			b.WriteString("\n")
			col = 0
		}
		b.WriteRune(r)
		col += w
	}
	return b.String()
}

func humanSize(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1fMB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	default:
		return fmt.Sprintf("%dB", n)
	}
}

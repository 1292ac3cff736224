// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/util"
)

// Version identifies the export artifact format.
const Version = "1.0"

// Artifact is the serialized form of an exported session.
type Artifact struct {
	Session    *model.ChatSession `json:"session"`
	ExportDate time.Time          `json:"export_date"`
	Version    string             `json:"version"`
}

// Session serializes a session as a pretty-printed JSON artifact. Pure: it
// does not mutate the session.
func Session(s *model.ChatSession) ([]byte, error) {
	artifact := Artifact{
		Session:    s,
		ExportDate: time.Now(),
		Version:    Version,
	}
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export session %s: %w", s.ID, err)
	}
	return data, nil
}

// Filename builds the artifact filename: "chat-<title>-<date>.json" with
// every non-alphanumeric title character replaced by a dash, lowercased.
func Filename(s *model.ChatSession, now time.Time) string {
	title := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return '-'
	}, s.Title)
	return fmt.Sprintf("chat-%s-%s.json", title, now.Format("2006-01-02"))
}

// WriteSession exports a session into dir, returning the path written.
func WriteSession(s *model.ChatSession, dir string) (string, error) {
	data, err := Session(s)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(s, time.Now()))
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

// ReadSession parses an exported artifact, validating the version.
func ReadSession(data []byte) (*model.ChatSession, error) {
	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}
	if artifact.Version != Version {
		return nil, fmt.Errorf("unsupported export version %q", artifact.Version)
	}
	if artifact.Session == nil {
		return nil, fmt.Errorf("export carries no session")
	}
	return artifact.Session, nil
}

// =============================================================================
// MARKDOWN
// =============================================================================

// Markdown renders a session as a readable Markdown transcript.
func Markdown(s *model.ChatSession) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "Created: %s\n\n", s.CreatedAt.Format(time.RFC3339))

	for _, m := range s.Messages {
		if m.IsTyping {
			continue
		}
		label := "Assistant"
		if m.Role == model.RoleUser {
			label = "You"
		}
		fmt.Fprintf(&b, "## %s (%s)\n\n%s\n\n", label, m.Timestamp.Format("2006-01-02 15:04"), m.Content)
		for _, att := range m.Attachments {
			fmt.Fprintf(&b, "> Attachment: %s (%s, %d bytes)\n\n", att.Name, att.Kind, att.Size)
		}
	}
	return []byte(b.String())
}

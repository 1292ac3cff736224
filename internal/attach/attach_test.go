// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package attach

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestIngest_CodeFile(t *testing.T) {
	path := writeFile(t, "main.go", []byte("package main"))

	att, err := Ingest(path)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if att.Kind != model.AttachmentCode || att.Language != "go" {
		t.Errorf("Kind=%s Language=%s, want code/go", att.Kind, att.Language)
	}
	if att.Name != "main.go" || att.Size != int64(len("package main")) {
		t.Errorf("Name=%s Size=%d", att.Name, att.Size)
	}

	const prefix = "data:"
	if !strings.HasPrefix(att.Content, prefix) || !strings.Contains(att.Content, ";base64,") {
		t.Fatalf("Content is not a data URL: %q", att.Content)
	}
	encoded := att.Content[strings.Index(att.Content, ";base64,")+len(";base64,"):]
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || string(decoded) != "package main" {
		t.Errorf("Decoded content = %q, err=%v", decoded, err)
	}
}

func TestIngest_KindByExtension(t *testing.T) {
	cases := []struct {
		name string
		kind model.AttachmentKind
	}{
		{"photo.PNG", model.AttachmentImage},
		{"script.py", model.AttachmentCode},
		{"notes.txt", model.AttachmentFile},
		{"archive", model.AttachmentFile},
	}
	for _, tc := range cases {
		att, err := Ingest(writeFile(t, tc.name, []byte("x")))
		if err != nil {
			t.Fatalf("Ingest(%s) failed: %v", tc.name, err)
		}
		if att.Kind != tc.kind {
			t.Errorf("Ingest(%s) kind = %s, want %s", tc.name, att.Kind, tc.kind)
		}
	}
}

func TestIngest_TooLarge(t *testing.T) {
	path := writeFile(t, "big.bin", make([]byte, MaxSize+1))
	_, err := Ingest(path)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

func TestIngestReader(t *testing.T) {
	att, err := IngestReader("snippet.py", strings.NewReader("print(1)"))
	if err != nil {
		t.Fatalf("IngestReader failed: %v", err)
	}
	if att.Kind != model.AttachmentCode || att.Language != "python" {
		t.Errorf("Kind=%s Language=%s, want code/python", att.Kind, att.Language)
	}
	if att.Size != int64(len("print(1)")) {
		t.Errorf("Size = %d", att.Size)
	}
}

func TestIngestReader_TooLarge(t *testing.T) {
	_, err := IngestReader("big.bin", strings.NewReader(strings.Repeat("a", MaxSize+1)))
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("Expected ErrTooLarge, got %v", err)
	}
}

func TestIngest_MissingFile(t *testing.T) {
	if _, err := Ingest(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing file")
	}
}

// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attach ingests local files as message attachments. Content is
// inlined as a data URL; nothing is uploaded separately.
package attach

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// MaxSize caps the size of a single attachment.
const MaxSize = 5 * 1024 * 1024 // 5MB

// ErrTooLarge is returned for files above MaxSize.
var ErrTooLarge = errors.New("attachment exceeds size limit")

// codeLanguages maps source file extensions to their display language.
var codeLanguages = map[string]string{
	".go":   "go",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".jsx":  "javascript",
	".tsx":  "typescript",
	".java": "java",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".rb":   "ruby",
	".sh":   "bash",
	".sql":  "sql",
	".html": "html",
	".css":  "css",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".toml": "toml",
	".md":   "markdown",
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".bmp":  true,
}

// Ingest reads the file at path into an attachment record. The kind is
// derived from the extension: known image formats become image
// attachments, known source formats become code attachments with a
// language, everything else is a plain file.
func Ingest(path string) (model.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("stat attachment: %w", err)
	}
	if info.Size() > MaxSize {
		return model.Attachment{}, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, filepath.Base(path), info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return model.Attachment{}, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	return IngestReader(filepath.Base(path), f)
}

// IngestReader builds an attachment record from a named stream. The read is
// capped at MaxSize.
func IngestReader(name string, r io.Reader) (model.Attachment, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return model.Attachment{}, fmt.Errorf("read attachment: %w", err)
	}
	if int64(len(data)) > MaxSize {
		return model.Attachment{}, fmt.Errorf("%w: %s", ErrTooLarge, name)
	}

	ext := strings.ToLower(filepath.Ext(name))
	att := model.Attachment{
		ID:      uuid.NewString(),
		Name:    name,
		Content: dataURL(ext, data),
		Size:    int64(len(data)),
	}

	switch {
	case imageExtensions[ext]:
		att.Kind = model.AttachmentImage
	case codeLanguages[ext] != "":
		att.Kind = model.AttachmentCode
		att.Language = codeLanguages[ext]
	default:
		att.Kind = model.AttachmentFile
	}
	return att, nil
}

// dataURL encodes content as a base64 data URL with a best-effort mime type.
func dataURL(ext string, data []byte) string {
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

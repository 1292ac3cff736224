// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/util"
)

// =============================================================================
// FILE DRIVER
// =============================================================================

// File stores each key as one JSON file under a base directory. Writes are
// atomic (temp file + fsync + rename) so a crash never leaves a partial
// value behind.
type File struct {
	baseDir string
}

// NewFile creates a file-backed store rooted at baseDir, creating the
// directory if needed.
func NewFile(baseDir string) (*File, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &File{baseDir: baseDir}, nil
}

// Get returns the value under key, reporting absence without error.
func (f *File) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Set writes the value under key atomically.
func (f *File) Set(key string, value []byte) error {
	return util.AtomicWriteFile(f.path(key), value, 0600)
}

// Delete removes the key. Deleting an absent key is not an error.
func (f *File) Delete(key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op for the file driver.
func (f *File) Close() error {
	return nil
}

// path maps a key to its file, replacing separators so keys can never
// escape the base directory.
func (f *File) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(f.baseDir, safe+".json")
}

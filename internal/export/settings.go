// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/util"
)

// WriteSettings exports the settings as pretty-printed JSON at path.
func WriteSettings(s model.ChatSettings, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := util.AtomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings export: %w", err)
	}
	return nil
}

// ReadSettings imports settings from a previously exported file. A
// malformed file is reported as an error and the current settings are left
// untouched by the caller.
func ReadSettings(path string) (model.ChatSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ChatSettings{}, fmt.Errorf("read settings import: %w", err)
	}
	var s model.ChatSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return model.ChatSettings{}, fmt.Errorf("parse settings import: %w", err)
	}
	return s, nil
}

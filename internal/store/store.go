// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"encoding/json"
	"fmt"
)

// Well-known keys. One key per top-level piece of state.
const (
	KeySessions       = "chat-sessions"
	KeyCurrentSession = "current-session"
	KeySettings       = "chat-settings"
	KeyTemplates      = "chat-templates"
)

// KV is a minimal key-value store. Get reports presence explicitly so
// callers can distinguish "absent" from "empty value".
type KV interface {
	Get(key string) (value []byte, ok bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// =============================================================================
// TYPED HELPERS
// =============================================================================

// LoadJSON unmarshals the value under key into dst. When the key is absent
// or the stored value does not parse, dst is left with the contents of
// fallback and no error is returned: load is "value or documented default".
// Only I/O failures surface as errors.
func LoadJSON[T any](kv KV, key string, fallback T) (T, error) {
	data, ok, err := kv.Get(key)
	if err != nil {
		return fallback, fmt.Errorf("load %q: %w", key, err)
	}
	if !ok {
		return fallback, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		// Corrupt stored value: fall back rather than crash.
		return fallback, nil
	}
	return v, nil
}

// SaveJSON marshals v and stores it under key.
func SaveJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := kv.Set(key, data); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}

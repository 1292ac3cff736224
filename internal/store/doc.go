// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store provides the key-value persistence layer.
//
// Each piece of application state (sessions, current session id, settings,
// templates) lives under its own key as a JSON value. Loading is always
// "value or documented default": a missing key is not an error, and a
// corrupt value falls back to the default instead of crashing.
//
// Three drivers implement the KV interface: File (one JSON file per key
// with atomic writes), SQLite (a single kv table), and Memory (tests).
package store

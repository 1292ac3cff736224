// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the application:
// atomic file writes and rune-safe string truncation.
package util

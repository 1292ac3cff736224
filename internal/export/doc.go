// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes sessions and settings to files the user can share
// or re-import. Session exports are versioned JSON artifacts; a Markdown
// rendition is available for reading outside the app.
package export

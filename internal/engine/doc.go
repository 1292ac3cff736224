// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine owns the active conversation's message list and the
// send/cancel lifecycle against the completion backend.
//
// At most one request is in flight at a time. A send appends the user
// message and a typing placeholder, issues the request, and settles by
// replacing the placeholder with either the assistant response or a fixed
// apology message. Stopping a generation cancels the request, sweeps every
// typing placeholder, and discards any late settlement of that request.
//
// The engine is safe for use from Bubble Tea command goroutines; all state
// is mutex-guarded and callers receive snapshot copies of the list.
package engine

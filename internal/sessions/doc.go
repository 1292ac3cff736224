// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sessions manages the ordered collection of chat sessions, the
// current-session pointer, and their persistence in the key-value store.
//
// The session list and the engine's active message list are disjoint
// owners: the store copies the engine's messages back into the current
// session via Reconcile after each settled turn, and pushes a session's
// messages into the engine on select. The list is never left empty: when
// the last session is deleted a fresh one is created and made current.
package sessions

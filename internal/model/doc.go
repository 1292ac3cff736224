// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat sessions, messages,
// attachments, reactions, and settings.
//
// The types here are plain records: they carry no I/O and no locking. The
// chat engine owns the active message list, the session store owns session
// metadata, and both persist through the store package.
package model

// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend implements the HTTP client for the completion endpoint.
//
// One request is issued per conversation turn, carrying the full message
// history plus the current settings; the response carries the assistant
// content and optional token/model metadata. Failures are uniform: any
// non-2xx status, transport error, or malformed body is a generation
// failure. Context cancellation is the single distinguished case, and
// requests are never retried automatically.
package backend

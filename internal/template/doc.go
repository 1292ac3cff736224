// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package template provides the prompt template catalog: reusable prompt
// strings with named {{placeholder}} variables. Resolving a template is a
// pure string substitution; the resolved prompt feeds the engine's send
// operation. The catalog ships with built-in samples and persists usage
// counts to the key-value store.
package template

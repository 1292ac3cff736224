// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package voice abstracts speech-to-text capture. Actual audio capture is
// an external collaborator; this package defines the contract the UI
// consumes and the late-result rule: a transcript arriving after the
// recording session was dismissed is dropped, never injected.
package voice

import "context"

// Transcriber turns one recording into text. Start blocks until the
// recording finishes or ctx is cancelled.
type Transcriber interface {
	Start(ctx context.Context) (string, error)
}

// Func adapts a function to the Transcriber interface.
type Func func(ctx context.Context) (string, error)

// Start implements Transcriber.
func (f Func) Start(ctx context.Context) (string, error) {
	return f(ctx)
}

// Session guards one recording against late results: the first Dismiss
// wins, and a transcript settled afterwards is dropped.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSession derives a cancellable recording session from ctx.
func NewSession(ctx context.Context) *Session {
	c, cancel := context.WithCancel(ctx)
	return &Session{ctx: c, cancel: cancel}
}

// Context returns the session context handed to the transcriber.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Dismiss cancels the recording. Safe to call repeatedly.
func (s *Session) Dismiss() {
	s.cancel()
}

// Accept reports whether a settled transcript may be used: false once the
// session has been dismissed.
func (s *Session) Accept() bool {
	return s.ctx.Err() == nil
}

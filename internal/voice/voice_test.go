// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package voice

import (
	"context"
	"testing"
)

func TestSession_AcceptsBeforeDismiss(t *testing.T) {
	s := NewSession(context.Background())
	if !s.Accept() {
		t.Error("Fresh session must accept transcripts")
	}
}

func TestSession_DropsLateTranscript(t *testing.T) {
	s := NewSession(context.Background())

	tr := Func(func(ctx context.Context) (string, error) {
		<-ctx.Done()
		// Late settlement after the user dismissed the recorder.
		return "too late", nil
	})

	done := make(chan string, 1)
	go func() {
		text, _ := tr.Start(s.Context())
		done <- text
	}()

	s.Dismiss()
	text := <-done
	if s.Accept() {
		t.Error("Dismissed session must reject transcripts")
	}
	_ = text
}

func TestSession_DismissIsIdempotent(t *testing.T) {
	s := NewSession(context.Background())
	s.Dismiss()
	s.Dismiss()
	if s.Accept() {
		t.Error("Accept must stay false after repeated dismiss")
	}
}

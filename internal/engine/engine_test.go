// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/backend"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// completerFunc adapts a function to the Completer interface.
type completerFunc func(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error)

func (f completerFunc) Complete(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error) {
	return f(ctx, messages, settings)
}

func echoCompleter(reply string) Completer {
	return completerFunc(func(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error) {
		return &backend.Completion{Content: reply, Tokens: 7, Model: settings.Model}, nil
	})
}

// blockingCompleter waits for ctx cancellation, signalling when it starts.
func blockingCompleter(started chan<- struct{}) Completer {
	return completerFunc(func(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
}

func TestSendMessage_Success(t *testing.T) {
	var gotHistory []*model.Message
	eng := New(completerFunc(func(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error) {
		gotHistory = messages
		return &backend.Completion{Content: "response", Tokens: 3, Model: "m"}, nil
	}))

	if err := eng.SendMessage(context.Background(), "hello", nil); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	msgs := eng.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "hello" {
		t.Errorf("First message = %+v, want the user turn", msgs[0])
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != "response" {
		t.Errorf("Second message = %+v, want the assistant response", msgs[1])
	}
	if msgs[1].IsTyping {
		t.Error("Placeholder was not replaced")
	}
	if msgs[1].Tokens != 3 || msgs[1].Model != "m" {
		t.Errorf("Response metadata not carried: tokens=%d model=%q", msgs[1].Tokens, msgs[1].Model)
	}

	// The request history must include the new user turn but never the
	// typing placeholder.
	if len(gotHistory) != 1 || gotHistory[0].Content != "hello" {
		t.Errorf("Request history = %+v", gotHistory)
	}
	if eng.IsLoading() {
		t.Error("Loading flag must clear after settlement")
	}
}

func TestSendMessage_EmptyInputIsNoOp(t *testing.T) {
	eng := New(echoCompleter("never"))

	for _, content := range []string{"", "   ", "\n\t"} {
		if err := eng.SendMessage(context.Background(), content, nil); err != nil {
			t.Fatalf("SendMessage(%q) failed: %v", content, err)
		}
		if n := len(eng.Messages()); n != 0 {
			t.Errorf("SendMessage(%q) appended %d messages, want 0", content, n)
		}
	}
}

func TestSendMessage_AttachmentsOnlyIsSent(t *testing.T) {
	eng := New(echoCompleter("got it"))
	att := []model.Attachment{{ID: "a1", Name: "pic.png", Kind: model.AttachmentImage}}

	if err := eng.SendMessage(context.Background(), "", att); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	msgs := eng.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if len(msgs[0].Attachments) != 1 || msgs[0].Attachments[0].Name != "pic.png" {
		t.Errorf("Attachments not carried: %+v", msgs[0].Attachments)
	}
}

func TestSendMessage_FailureYieldsErrorReply(t *testing.T) {
	eng := New(completerFunc(func(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error) {
		return nil, fmt.Errorf("%w: status 500", backend.ErrGeneration)
	}))

	err := eng.SendMessage(context.Background(), "hello", nil)
	if !errors.Is(err, backend.ErrGeneration) {
		t.Fatalf("Expected ErrGeneration back, got %v", err)
	}

	msgs := eng.Messages()
	if len(msgs) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Content != ErrorReply || msgs[1].Role != model.RoleAssistant {
		t.Errorf("Placeholder not replaced with error reply: %+v", msgs[1])
	}
	if msgs[1].IsTyping {
		t.Error("Typing placeholder survived a failed settlement")
	}
	if eng.IsLoading() {
		t.Error("Loading flag must clear after a failure")
	}
}

func TestSendMessage_RejectsConcurrentSend(t *testing.T) {
	started := make(chan struct{})
	eng := New(blockingCompleter(started))

	done := make(chan struct{})
	go func() {
		eng.SendMessage(context.Background(), "first", nil)
		close(done)
	}()
	<-started

	// Second send while in flight must not append anything.
	if err := eng.SendMessage(context.Background(), "second", nil); err != nil {
		t.Fatalf("Concurrent SendMessage failed: %v", err)
	}
	if n := len(eng.Messages()); n != 2 {
		t.Errorf("Expected 2 messages while in flight, got %d", n)
	}

	eng.StopGeneration()
	<-done
}

func TestStopGeneration_SweepsPlaceholderAndDiscardsResult(t *testing.T) {
	started := make(chan struct{})
	eng := New(blockingCompleter(started))

	done := make(chan error, 1)
	go func() {
		done <- eng.SendMessage(context.Background(), "question", nil)
	}()
	<-started

	if !eng.StopGeneration() {
		t.Fatal("StopGeneration reported idle while a request was in flight")
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Cancelled send returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Send did not settle after stop")
	}

	msgs := eng.Messages()
	if len(msgs) != 1 {
		t.Fatalf("Expected only the user message after stop, got %d", len(msgs))
	}
	if msgs[0].Role != model.RoleUser || msgs[0].Content != "question" {
		t.Errorf("User message lost on stop: %+v", msgs[0])
	}
	for _, m := range msgs {
		if m.IsTyping {
			t.Error("Typing placeholder survived a stop")
		}
	}
	if eng.IsLoading() {
		t.Error("Loading flag must clear on stop")
	}
}

func TestStopGeneration_IdleIsNoOp(t *testing.T) {
	eng := New(echoCompleter("hi"))
	if eng.StopGeneration() {
		t.Error("StopGeneration must report false while idle")
	}
}

func TestSendMessage_StaleResultDoesNotLandInNextTurn(t *testing.T) {
	// First request blocks until cancelled, then tries to return a late
	// success. The stop must discard it so the next turn is untouched.
	started := make(chan struct{})
	release := make(chan struct{})
	first := true
	eng := New(completerFunc(func(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error) {
		if first {
			first = false
			close(started)
			<-ctx.Done()
			<-release
			return &backend.Completion{Content: "stale"}, nil
		}
		return &backend.Completion{Content: "fresh"}, nil
	}))

	done := make(chan struct{})
	go func() {
		eng.SendMessage(context.Background(), "old question", nil)
		close(done)
	}()
	<-started
	eng.StopGeneration()
	close(release)
	<-done

	if err := eng.SendMessage(context.Background(), "new question", nil); err != nil {
		t.Fatalf("Second send failed: %v", err)
	}

	msgs := eng.Messages()
	if len(msgs) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(msgs))
	}
	for _, m := range msgs {
		if m.Content == "stale" {
			t.Error("Stale completion landed in the conversation")
		}
	}
	if msgs[2].Content != "fresh" {
		t.Errorf("Last message = %q, want the fresh response", msgs[2].Content)
	}
}

func TestSetMessages_StopsInFlightRequest(t *testing.T) {
	started := make(chan struct{})
	eng := New(blockingCompleter(started))

	done := make(chan struct{})
	go func() {
		eng.SendMessage(context.Background(), "in old session", nil)
		close(done)
	}()
	<-started

	replacement := []*model.Message{model.NewUserMessage("other session", nil)}
	eng.SetMessages(replacement)
	<-done

	msgs := eng.Messages()
	if len(msgs) != 1 || msgs[0].Content != "other session" {
		t.Errorf("Conversation after SetMessages = %+v", msgs)
	}
	if eng.IsLoading() {
		t.Error("Loading flag must clear when the conversation is replaced")
	}
}

func TestClearChat(t *testing.T) {
	eng := New(echoCompleter("hi"))
	eng.SendMessage(context.Background(), "hello", nil)
	eng.ClearChat()
	if n := len(eng.Messages()); n != 0 {
		t.Errorf("Expected empty conversation, got %d messages", n)
	}
}

func TestMessageMutations(t *testing.T) {
	eng := New(echoCompleter("hi"))
	eng.SendMessage(context.Background(), "hello", nil)
	id := eng.Messages()[0].ID

	if !eng.EditMessage(id, "hello, edited") {
		t.Fatal("EditMessage did not find the message")
	}
	m := eng.Messages()[0]
	if m.Content != "hello, edited" || !m.IsEdited || m.OriginalContent != "hello" {
		t.Errorf("Edit state = %+v", m)
	}

	if !eng.ToggleBookmark(id) || !eng.Messages()[0].IsBookmarked {
		t.Error("ToggleBookmark did not set the flag")
	}

	eng.AddReaction(id, "👍")
	eng.AddReaction(id, "👍")
	reactions := eng.Messages()[0].Reactions
	if len(reactions) != 1 || reactions[0].Count != 2 {
		t.Errorf("Reactions = %+v, want one emoji with count 2", reactions)
	}

	if !eng.DeleteMessage(id) {
		t.Fatal("DeleteMessage did not find the message")
	}
	if eng.DeleteMessage(id) {
		t.Error("Deleting an absent message must be a no-op")
	}
	if n := len(eng.Messages()); n != 1 {
		t.Errorf("Expected 1 remaining message, got %d", n)
	}
}

func TestMutations_UnknownIDAreNoOps(t *testing.T) {
	eng := New(echoCompleter("hi"))
	eng.SendMessage(context.Background(), "hello", nil)
	before := len(eng.Messages())

	if eng.EditMessage("nope", "x") || eng.ToggleBookmark("nope") || eng.AddReaction("nope", "🎉") {
		t.Error("Mutations on unknown IDs must report false")
	}
	if len(eng.Messages()) != before {
		t.Error("Unknown-ID mutation changed the conversation")
	}
}

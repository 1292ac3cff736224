// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

func TestComplete_Success(t *testing.T) {
	var gotReq CompletionRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/chat" {
			t.Errorf("Path = %s, want /api/chat", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Completion{Content: "hi there", Tokens: 12, Model: "test-model"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	msgs := []*model.Message{model.NewUserMessage("hello", nil)}
	settings := model.DefaultSettings()

	resp, err := client.Complete(context.Background(), msgs, settings)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if resp.Content != "hi there" || resp.Tokens != 12 || resp.Model != "test-model" {
		t.Errorf("Completion = %+v", resp)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Content != "hello" {
		t.Errorf("Request messages = %+v, want the sent history", gotReq.Messages)
	}
	if gotReq.Settings.Model != settings.Model {
		t.Errorf("Request settings model = %q, want %q", gotReq.Settings.Model, settings.Model)
	}
}

func TestComplete_NonOKStatusIsGenerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Complete(context.Background(), nil, model.ChatSettings{})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("Expected ErrGeneration, got %v", err)
	}
	if IsCancellation(err) {
		t.Error("Status failure must not look like a cancellation")
	}
}

func TestComplete_MalformedBodyIsGenerationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Complete(context.Background(), nil, model.ChatSettings{})
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("Expected ErrGeneration, got %v", err)
	}
}

func TestComplete_Cancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := NewClient(srv.URL).Complete(ctx, nil, model.ChatSettings{})
		done <- err
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		if !IsCancellation(err) {
			t.Errorf("Expected cancellation, got %v", err)
		}
		if errors.Is(err, ErrGeneration) {
			t.Error("Cancellation must not be reported as a generation failure")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Complete did not return after cancel")
	}
}

func TestComplete_NotConfigured(t *testing.T) {
	_, err := NewClient("").Complete(context.Background(), nil, model.ChatSettings{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

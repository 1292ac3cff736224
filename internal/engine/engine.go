// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/backend"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// ErrorReply is the assistant message shown when a generation fails. The
// failure is absorbed into the conversation; recovery is resubmitting.
const ErrorReply = "Sorry, I encountered an error while processing your request. Please try again."

// ReactingUser identifies the local user on reactions.
const ReactingUser = "current-user"

// Completer issues one completion request for a conversation turn.
type Completer interface {
	Complete(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*backend.Completion, error)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine holds the active conversation and drives sends against the backend.
type Engine struct {
	mu         sync.Mutex
	messages   []*model.Message
	settings   model.ChatSettings
	loading    bool
	generation uint64

	completer Completer
	cancels   *cancelManager
	log       zerolog.Logger
}

// New creates an engine over the given completer with default settings.
func New(completer Completer) *Engine {
	return &Engine{
		completer: completer,
		settings:  model.DefaultSettings(),
		cancels:   newCancelManager(),
		log:       zerolog.Nop(),
	}
}

// WithLogger attaches a logger to the engine.
func (e *Engine) WithLogger(log zerolog.Logger) *Engine {
	e.log = log
	return e
}

// Messages returns a snapshot of the conversation.
func (e *Engine) Messages() []*model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*model.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// IsLoading reports whether a request is in flight.
func (e *Engine) IsLoading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// Settings returns the settings applied to the next send.
func (e *Engine) Settings() model.ChatSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// SetSettings replaces the active settings. In-flight requests keep the
// settings they were sent with.
func (e *Engine) SetSettings(s model.ChatSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = s
}

// SetMessages replaces the conversation, stopping any in-flight request
// first so a late settlement cannot land in the new conversation.
func (e *Engine) SetMessages(msgs []*model.Message) {
	e.mu.Lock()
	e.stopLocked()
	e.messages = make([]*model.Message, len(msgs))
	copy(e.messages, msgs)
	e.mu.Unlock()
}

// =============================================================================
// SEND / CANCEL
// =============================================================================

// SendMessage runs one full conversation turn: append the user message and
// a typing placeholder, issue the request, and replace the placeholder with
// the response or with ErrorReply. It blocks until the turn settles, so it
// belongs on a command goroutine, not the UI loop.
//
// Empty input with no attachments is a no-op, as is sending while a request
// is already in flight. A non-cancellation failure is returned to the
// caller after it has been absorbed into the conversation.
func (e *Engine) SendMessage(ctx context.Context, content string, attachments []model.Attachment) error {
	e.mu.Lock()

	if strings.TrimSpace(content) == "" && len(attachments) == 0 {
		e.mu.Unlock()
		return nil
	}
	if e.loading {
		e.mu.Unlock()
		e.log.Debug().Msg("send ignored: request already in flight")
		return nil
	}

	userMsg := model.NewUserMessage(content, attachments)
	typing := model.NewTypingMessage()
	e.messages = append(e.messages, userMsg, typing)

	// History excludes the placeholder but includes the new user turn.
	history := make([]*model.Message, len(e.messages)-1)
	copy(history, e.messages[:len(e.messages)-1])

	settings := e.settings
	e.generation++
	gen := e.generation
	e.loading = true

	reqCtx, cancel := context.WithCancel(ctx)
	e.cancels.set(cancel)
	e.mu.Unlock()

	completion, err := e.completer.Complete(reqCtx, history, settings)

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		// A stop already settled this turn; the result is discarded.
		e.log.Debug().Uint64("generation", gen).Msg("discarding stale completion")
		return nil
	}

	e.cancels.clear()
	e.loading = false

	switch {
	case err == nil:
		modelID := completion.Model
		if modelID == "" {
			modelID = settings.Model
		}
		e.replaceLocked(typing.ID, model.NewAssistantMessage(completion.Content, completion.Tokens, modelID))
		return nil

	case backend.IsCancellation(err):
		// Cancellation without a stop (e.g. shutdown): the placeholder must
		// still never outlive the loading state.
		e.sweepTypingLocked()
		return nil

	default:
		e.log.Warn().Err(err).Msg("generation failed")
		e.replaceLocked(typing.ID, model.NewAssistantMessage(ErrorReply, 0, settings.Model))
		return err
	}
}

// StopGeneration cancels the in-flight request, removes every typing
// placeholder, and invalidates the pending settlement. It reports whether
// a request was actually stopped; stopping while idle is a no-op.
func (e *Engine) StopGeneration() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loading {
		return false
	}
	e.stopLocked()
	e.log.Debug().Msg("generation stopped")
	return true
}

// stopLocked performs the stop under e.mu: bump the generation so the
// pending settlement is discarded, cancel the request, sweep placeholders.
func (e *Engine) stopLocked() {
	if !e.loading {
		return
	}
	e.generation++
	e.loading = false
	e.cancels.cancel()
	e.sweepTypingLocked()
}

// =============================================================================
// MESSAGE MUTATIONS
// =============================================================================

// ClearChat empties the conversation. It does not touch an in-flight
// request; callers wanting a clean slate stop generation first. A late
// settlement whose placeholder is gone is dropped, never re-appended.
func (e *Engine) ClearChat() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = nil
}

// DeleteMessage removes the message with the given ID. Unknown IDs are a
// no-op; it reports whether a message was removed.
func (e *Engine) DeleteMessage(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, m := range e.messages {
		if m.ID == id {
			e.messages = append(e.messages[:i], e.messages[i+1:]...)
			return true
		}
	}
	return false
}

// EditMessage rewrites a message's content, preserving the pre-edit text.
func (e *Engine) EditMessage(id, content string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m := e.findLocked(id); m != nil {
		m.Edit(content)
		return true
	}
	return false
}

// ToggleBookmark flips the bookmark flag on a message.
func (e *Engine) ToggleBookmark(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m := e.findLocked(id); m != nil {
		m.ToggleBookmark()
		return true
	}
	return false
}

// AddReaction records one reaction from the local user. Repeated reactions
// with the same emoji keep incrementing the count.
func (e *Engine) AddReaction(id, emoji string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m := e.findLocked(id); m != nil {
		m.React(emoji, ReactingUser)
		return true
	}
	return false
}

// =============================================================================
// INTERNAL
// =============================================================================

func (e *Engine) findLocked(id string) *model.Message {
	for _, m := range e.messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// replaceLocked swaps the message with the given ID for msg. If the target
// was removed mid-flight the result is dropped rather than re-appended.
func (e *Engine) replaceLocked(id string, msg *model.Message) {
	for i, m := range e.messages {
		if m.ID == id {
			e.messages[i] = msg
			return
		}
	}
	e.log.Debug().Str("id", id).Msg("settlement target missing, dropping result")
}

// sweepTypingLocked removes every typing placeholder from the conversation.
func (e *Engine) sweepTypingLocked() {
	kept := e.messages[:0]
	for _, m := range e.messages {
		if !m.IsTyping {
			kept = append(kept, m)
		}
	}
	e.messages = kept
}

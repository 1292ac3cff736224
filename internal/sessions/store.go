// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessions

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/store"
)

// Conversation is the slice of the chat engine the session store drives:
// loading a session's messages on select and pulling them back on
// reconcile. Satisfied by *engine.Engine.
type Conversation interface {
	Messages() []*model.Message
	SetMessages(msgs []*model.Message)
	SetSettings(s model.ChatSettings)
}

// =============================================================================
// SESSION STORE
// =============================================================================

// Store owns the session list, the current-session pointer, and the global
// settings, persisting all three to the key-value store.
type Store struct {
	mu        sync.Mutex
	kv        store.KV
	sessions  []*model.ChatSession
	currentID string
	settings  model.ChatSettings
	conv      Conversation
	log       zerolog.Logger
}

// NewStore creates a session store over the given key-value store and
// conversation. Call Load before use.
func NewStore(kv store.KV, conv Conversation) *Store {
	return &Store{
		kv:       kv,
		conv:     conv,
		settings: model.DefaultSettings(),
		log:      zerolog.Nop(),
	}
}

// WithLogger attaches a logger to the store.
func (st *Store) WithLogger(log zerolog.Logger) *Store {
	st.log = log
	return st
}

// Load restores sessions, settings, and the current pointer from the
// key-value store. Absent or corrupt values fall back to defaults. After a
// load the list is never empty and the engine holds the current session's
// messages and the global settings.
func (st *Store) Load() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessions, err := store.LoadJSON(st.kv, store.KeySessions, []*model.ChatSession(nil))
	if err != nil {
		return err
	}
	settings, err := store.LoadJSON(st.kv, store.KeySettings, model.DefaultSettings())
	if err != nil {
		return err
	}
	currentID, err := store.LoadJSON(st.kv, store.KeyCurrentSession, "")
	if err != nil {
		return err
	}

	st.sessions = sessions
	st.settings = settings
	st.currentID = ""

	if len(st.sessions) == 0 {
		fresh := model.NewChatSession(st.settings)
		st.sessions = []*model.ChatSession{fresh}
		st.currentID = fresh.ID
	} else if st.findLocked(currentID) != nil {
		st.currentID = currentID
	} else {
		// Stale pointer: fall back to the most recently stored session.
		st.currentID = st.sessions[0].ID
	}

	st.conv.SetSettings(st.settings)
	st.conv.SetMessages(st.currentLocked().Messages)
	st.persistLocked()

	st.log.Info().
		Int("sessions", len(st.sessions)).
		Str("current", st.currentID).
		Msg("session state loaded")
	return nil
}

// =============================================================================
// READ VIEWS
// =============================================================================

// Sessions returns a snapshot of the session list in storage order.
func (st *Store) Sessions() []*model.ChatSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	out := make([]*model.ChatSession, len(st.sessions))
	copy(out, st.sessions)
	return out
}

// View applies a filter to the session list.
func (st *Store) View(f Filter) []*model.ChatSession {
	return f.Apply(st.Sessions())
}

// Current returns the current session, or nil when the pointer is cleared.
func (st *Store) Current() *model.ChatSession {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.currentLocked()
}

// CurrentID returns the current session's ID, or empty.
func (st *Store) CurrentID() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.currentID
}

// Settings returns the global settings.
func (st *Store) Settings() model.ChatSettings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.settings
}

// =============================================================================
// MUTATIONS
// =============================================================================

// Create allocates a fresh session snapshotting the current settings, puts
// it at the head of the list, makes it current, and resets the engine's
// message list.
func (st *Store) Create() *model.ChatSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := model.NewChatSession(st.settings)
	st.sessions = append([]*model.ChatSession{s}, st.sessions...)
	st.currentID = s.ID
	st.conv.SetMessages(nil)
	st.persistLocked()
	st.log.Debug().Str("id", s.ID).Msg("session created")
	return s
}

// Select makes the session with the given ID current and loads its
// messages into the engine. Unknown IDs are a no-op returning false.
func (st *Store) Select(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.findLocked(id)
	if s == nil {
		return false
	}
	st.currentID = s.ID
	st.conv.SetMessages(s.Messages)
	st.persistLocked()
	return true
}

// Delete removes the session with the given ID. Deleting the current
// session clears the pointer and the engine's message list; deleting the
// last session creates a fresh one and makes it current.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	idx := -1
	for i, s := range st.sessions {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	st.sessions = append(st.sessions[:idx], st.sessions[idx+1:]...)

	if st.currentID == id {
		st.currentID = ""
		st.conv.SetMessages(nil)
	}
	if len(st.sessions) == 0 {
		fresh := model.NewChatSession(st.settings)
		st.sessions = []*model.ChatSession{fresh}
		st.currentID = fresh.ID
	}
	st.persistLocked()
	st.log.Debug().Str("id", id).Msg("session deleted")
	return true
}

// ToggleArchive flips the archived flag on a session.
func (st *Store) ToggleArchive(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.findLocked(id)
	if s == nil {
		return false
	}
	s.ToggleArchived()
	st.persistLocked()
	return true
}

// Rename sets a session's title directly.
func (st *Store) Rename(id, title string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.findLocked(id)
	if s == nil {
		return false
	}
	s.Title = title
	s.Touch()
	st.persistLocked()
	return true
}

// UpdateSettings replaces the global settings, pushes them to the engine
// for the next send, and persists them. Existing sessions keep their
// creation-time snapshots.
func (st *Store) UpdateSettings(s model.ChatSettings) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.settings = s
	st.conv.SetSettings(s)
	if err := store.SaveJSON(st.kv, store.KeySettings, s); err != nil {
		st.log.Warn().Err(err).Msg("persist settings failed")
	}
	st.persistLocked()
}

// Reconcile copies the engine's message list back into the current session
// and derives the title from the first user message while the session
// still carries the default title. Call after every settled turn and
// message mutation. Returns the current session, or nil if the pointer is
// cleared.
func (st *Store) Reconcile() *model.ChatSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	s := st.currentLocked()
	if s == nil {
		return nil
	}
	s.SetMessages(st.conv.Messages())

	if s.Title == model.DefaultSessionTitle {
		for _, m := range s.Messages {
			if m.Role == model.RoleUser && m.Content != "" {
				s.Title = model.DeriveTitle(m.Content)
				break
			}
		}
	}
	st.persistLocked()
	return s
}

// Flush writes the full state to the key-value store regardless of the
// auto-save toggle. Called on shutdown.
func (st *Store) Flush() error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := store.SaveJSON(st.kv, store.KeySessions, st.sessions); err != nil {
		return err
	}
	if err := store.SaveJSON(st.kv, store.KeyCurrentSession, st.currentID); err != nil {
		return err
	}
	return store.SaveJSON(st.kv, store.KeySettings, st.settings)
}

// =============================================================================
// INTERNAL
// =============================================================================

func (st *Store) findLocked(id string) *model.ChatSession {
	if id == "" {
		return nil
	}
	for _, s := range st.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (st *Store) currentLocked() *model.ChatSession {
	return st.findLocked(st.currentID)
}

// persistLocked saves the session list and current pointer, honoring the
// auto-save toggle. Failures are logged, not surfaced: losing a write must
// not break the conversation.
func (st *Store) persistLocked() {
	if !st.settings.AutoSave {
		return
	}
	if err := store.SaveJSON(st.kv, store.KeySessions, st.sessions); err != nil {
		st.log.Warn().Err(err).Msg("persist sessions failed")
		return
	}
	if err := store.SaveJSON(st.kv, store.KeyCurrentSession, st.currentID); err != nil {
		st.log.Warn().Err(err).Msg("persist current pointer failed")
	}
}

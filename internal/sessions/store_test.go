// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package sessions

import (
	"strings"
	"testing"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/store"
)

// fakeConv records the engine-side calls the store makes.
type fakeConv struct {
	messages []*model.Message
	settings model.ChatSettings
}

func (f *fakeConv) Messages() []*model.Message        { return f.messages }
func (f *fakeConv) SetMessages(msgs []*model.Message) { f.messages = msgs }
func (f *fakeConv) SetSettings(s model.ChatSettings)  { f.settings = s }

func newTestStore(t *testing.T) (*Store, *fakeConv, store.KV) {
	t.Helper()
	kv := store.NewMemory()
	conv := &fakeConv{}
	st := NewStore(kv, conv)
	if err := st.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return st, conv, kv
}

func TestLoad_EmptyStoreCreatesFreshSession(t *testing.T) {
	st, _, _ := newTestStore(t)

	sessions := st.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session after cold load, got %d", len(sessions))
	}
	if sessions[0].Title != model.DefaultSessionTitle {
		t.Errorf("Fresh session title = %q", sessions[0].Title)
	}
	if st.CurrentID() != sessions[0].ID {
		t.Error("Fresh session must be current")
	}
}

func TestLoad_RestoresPersistedState(t *testing.T) {
	st, conv, kv := newTestStore(t)
	first := st.Current()
	conv.SetMessages([]*model.Message{model.NewUserMessage("remember me", nil)})
	st.Reconcile()
	second := st.Create()
	_ = second

	// New store over the same kv must see both sessions and the pointer.
	st2 := NewStore(kv, &fakeConv{})
	if err := st2.Load(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if n := len(st2.Sessions()); n != 2 {
		t.Fatalf("Expected 2 sessions after reload, got %d", n)
	}
	if st2.CurrentID() != second.ID {
		t.Errorf("Current after reload = %q, want %q", st2.CurrentID(), second.ID)
	}

	restored := false
	for _, s := range st2.Sessions() {
		if s.ID == first.ID && len(s.Messages) == 1 && s.Messages[0].Content == "remember me" {
			restored = true
		}
	}
	if !restored {
		t.Error("Reconciled messages did not survive the reload")
	}
}

func TestLoad_StaleCurrentPointerFallsBack(t *testing.T) {
	kv := store.NewMemory()
	store.SaveJSON(kv, store.KeyCurrentSession, "no-such-session")
	s := model.NewChatSession(model.DefaultSettings())
	store.SaveJSON(kv, store.KeySessions, []*model.ChatSession{s})

	st := NewStore(kv, &fakeConv{})
	if err := st.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.CurrentID() != s.ID {
		t.Errorf("Current = %q, want fallback to the stored session", st.CurrentID())
	}
}

func TestCreate_PrependsAndResetsEngine(t *testing.T) {
	st, conv, _ := newTestStore(t)
	conv.SetMessages([]*model.Message{model.NewUserMessage("old", nil)})

	s := st.Create()
	if st.Sessions()[0].ID != s.ID {
		t.Error("New session must be at the head of the list")
	}
	if st.CurrentID() != s.ID {
		t.Error("New session must become current")
	}
	if len(conv.messages) != 0 {
		t.Error("Engine message list must be reset on create")
	}
}

func TestSelect_LoadsMessagesIntoEngine(t *testing.T) {
	st, conv, _ := newTestStore(t)
	first := st.Current()
	conv.SetMessages([]*model.Message{model.NewUserMessage("kept", nil)})
	st.Reconcile()

	st.Create()
	if len(conv.messages) != 0 {
		t.Fatal("Engine not reset after create")
	}

	if !st.Select(first.ID) {
		t.Fatal("Select failed for a known session")
	}
	if len(conv.messages) != 1 || conv.messages[0].Content != "kept" {
		t.Errorf("Engine messages after select = %+v", conv.messages)
	}
	if st.Select("unknown") {
		t.Error("Select must report false for unknown IDs")
	}
}

func TestDelete_LastSessionCreatesFresh(t *testing.T) {
	st, conv, _ := newTestStore(t)
	conv.SetMessages([]*model.Message{model.NewUserMessage("bye", nil)})
	only := st.Current()

	if !st.Delete(only.ID) {
		t.Fatal("Delete failed for the current session")
	}

	sessions := st.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("Expected a fresh session after deleting the last, got %d", len(sessions))
	}
	if sessions[0].ID == only.ID {
		t.Error("Fresh session must have a new identity")
	}
	if st.CurrentID() != sessions[0].ID {
		t.Error("Fresh session must become current")
	}
	if len(conv.messages) != 0 {
		t.Error("Engine message list must be cleared")
	}
}

func TestDelete_NonCurrentKeepsPointer(t *testing.T) {
	st, _, _ := newTestStore(t)
	old := st.Current()
	current := st.Create()

	if !st.Delete(old.ID) {
		t.Fatal("Delete failed")
	}
	if st.CurrentID() != current.ID {
		t.Error("Deleting a non-current session must not move the pointer")
	}
	if st.Delete(old.ID) {
		t.Error("Deleting an absent session must be a no-op")
	}
}

func TestReconcile_DerivesTitleOnce(t *testing.T) {
	st, conv, _ := newTestStore(t)

	long := strings.Repeat("x", 60)
	conv.SetMessages([]*model.Message{model.NewUserMessage(long, nil)})
	s := st.Reconcile()

	want := strings.Repeat("x", 50) + "..."
	if s.Title != want {
		t.Errorf("Derived title = %q, want %q", s.Title, want)
	}

	// A later reconcile must not re-derive over the settled title.
	conv.messages = append([]*model.Message{model.NewUserMessage("different opener", nil)}, conv.messages...)
	if got := st.Reconcile().Title; got != want {
		t.Errorf("Title changed on second reconcile: %q", got)
	}
}

func TestUpdateSettings_PushesToEngineAndNewSessions(t *testing.T) {
	st, conv, kv := newTestStore(t)

	s := st.Settings()
	s.Model = "gpt-4-turbo"
	s.Temperature = 1.2
	st.UpdateSettings(s)

	if conv.settings.Model != "gpt-4-turbo" {
		t.Error("Engine did not receive the new settings")
	}
	if st.Create().Settings.Temperature != 1.2 {
		t.Error("New sessions must snapshot the updated settings")
	}

	reloaded, err := store.LoadJSON(kv, store.KeySettings, model.ChatSettings{})
	if err != nil || reloaded.Model != "gpt-4-turbo" {
		t.Errorf("Settings not persisted: %+v, err=%v", reloaded, err)
	}
}

func TestAutoSaveOff_SkipsSessionWrites(t *testing.T) {
	st, _, kv := newTestStore(t)

	s := st.Settings()
	s.AutoSave = false
	st.UpdateSettings(s)
	kv.Delete(store.KeySessions)

	st.Create()
	if _, ok, _ := kv.Get(store.KeySessions); ok {
		t.Error("Session write happened with auto-save off")
	}

	// Flush writes regardless of the toggle.
	if err := st.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if _, ok, _ := kv.Get(store.KeySessions); !ok {
		t.Error("Flush must persist sessions")
	}
}

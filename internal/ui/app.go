// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea terminal interface: the session
// sidebar, the message thread, the input line, and the settings and
// template overlays. It holds no business state of its own; every intent
// is forwarded to the engine, the session store, or the template catalog.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/attach"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/engine"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/sessions"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/template"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/voice"
)

const sidebarWidth = 32

// focusArea selects which pane receives navigation keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusSidebar
)

// overlayKind selects the active full-screen overlay.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlaySettings
	overlayTemplates
	overlayHelp
)

// Options configures the App.
type Options struct {
	Theme       string
	ShowTokens  bool
	ExportDir   string
	Transcriber voice.Transcriber
	Logger      zerolog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	theme *Theme
	keys  KeyMap
	log   zerolog.Logger

	engine      *engine.Engine
	store       *sessions.Store
	catalog     *template.Catalog
	transcriber voice.Transcriber
	exportDir   string
	showTokens  bool

	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	thread    *thread
	sidebar   *sidebar
	settings  *settingsPanel
	templates *templatesPanel

	focus   focusArea
	overlay overlayKind

	searching   bool
	searchInput textinput.Model

	voiceSession *voice.Session
	pending      []model.Attachment
	status       string
}

// New creates the root model over the already loaded engine, session
// store, and template catalog.
func New(eng *engine.Engine, store *sessions.Store, catalog *template.Catalog, opts Options) *App {
	theme := NewTheme(opts.Theme)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message..."
	ti.CharLimit = 8192
	ti.Focus()

	si := textinput.New()
	si.Prompt = ""
	si.Placeholder = "search"
	si.CharLimit = 256

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	vp := viewport.New(80, 20)

	a := &App{
		theme:       theme,
		keys:        DefaultKeyMap(),
		log:         opts.Logger,
		engine:      eng,
		store:       store,
		catalog:     catalog,
		transcriber: opts.Transcriber,
		exportDir:   opts.ExportDir,
		showTokens:  opts.ShowTokens,
		viewport:    vp,
		input:       ti,
		searchInput: si,
		spin:        sp,
		thread:      newThread(theme, opts.ShowTokens),
		sidebar:     newSidebar(theme),
		settings:    newSettingsPanel(theme),
		templates:   newTemplatesPanel(theme, catalog),
	}
	a.sidebar.refresh(store)
	a.refreshThread()
	return a
}

// Init starts the spinner and cursor blink.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, textinput.Blink)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages: overlays first, then search, then global keys.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		if a.engine.IsLoading() {
			// Typing placeholder animates while the request is in flight.
			a.refreshThread()
		}
		return a, cmd

	case sendSettledMsg:
		if msg.err != nil {
			a.log.Warn().Err(msg.err).Msg("send settled with error")
		}
		a.sidebar.refresh(a.store)
		a.refreshThread()
		a.viewport.GotoBottom()
		return a, nil

	case exportDoneMsg:
		if msg.err != nil {
			a.status = "export failed: " + msg.err.Error()
		} else {
			a.status = "exported to " + msg.path
		}
		return a, nil

	case transcriptMsg:
		a.voiceSession = nil
		if msg.err != nil {
			a.status = "voice input failed"
			return a, nil
		}
		if msg.text != "" {
			a.input.SetValue(strings.TrimSpace(a.input.Value() + " " + msg.text))
			a.input.CursorEnd()
		}
		return a, nil

	case ConfigReloadedMsg:
		a.theme = NewTheme(msg.Theme)
		a.showTokens = msg.ShowTokens
		a.thread = newThread(a.theme, msg.ShowTokens)
		a.thread.setWidth(a.viewport.Width)
		a.sidebar.theme = a.theme
		a.settings.theme = a.theme
		a.templates.theme = a.theme
		a.refreshThread()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		a.engine.StopGeneration()
		a.store.Reconcile()
		if err := a.store.Flush(); err != nil {
			a.log.Warn().Err(err).Msg("flush on quit failed")
		}
		return a, tea.Quit
	}

	switch a.overlay {
	case overlaySettings:
		return a.handleSettingsKey(msg)
	case overlayTemplates:
		return a.handleTemplatesKey(msg)
	case overlayHelp:
		if key.Matches(msg, a.keys.Cancel) || key.Matches(msg, a.keys.Help) {
			a.overlay = overlayNone
		}
		return a, nil
	}

	if a.searching {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Cancel):
		if a.voiceSession != nil {
			a.voiceSession.Dismiss()
			a.voiceSession = nil
			a.status = "recording dismissed"
			return a, nil
		}
		if a.engine.StopGeneration() {
			a.store.Reconcile()
			a.refreshThread()
			a.status = "generation stopped"
		}
		return a, nil

	case key.Matches(msg, a.keys.NewSession):
		a.store.Create()
		a.sidebar.refresh(a.store)
		a.refreshThread()
		a.status = ""
		return a, nil

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.SetValue(a.sidebar.filter.Query)
		a.searchInput.Focus()
		return a, nil

	case key.Matches(msg, a.keys.SwitchPane):
		if a.focus == focusInput {
			a.focus = focusSidebar
			a.input.Blur()
		} else {
			a.focus = focusInput
			a.input.Focus()
		}
		return a, nil

	case key.Matches(msg, a.keys.Settings):
		a.settings.open(a.store.Settings())
		a.overlay = overlaySettings
		return a, nil

	case key.Matches(msg, a.keys.Templates):
		a.templates.open()
		a.overlay = overlayTemplates
		return a, nil

	case key.Matches(msg, a.keys.Help):
		a.overlay = overlayHelp
		return a, nil

	case key.Matches(msg, a.keys.Export):
		target := a.store.Current()
		if a.focus == focusSidebar {
			if sel := a.sidebar.selected(); sel != nil {
				target = sel
			}
		}
		if target == nil {
			return a, nil
		}
		return a, a.exportCmd(target.Clone())

	case key.Matches(msg, a.keys.Clear):
		a.engine.StopGeneration()
		a.engine.ClearChat()
		a.store.Reconcile()
		a.sidebar.refresh(a.store)
		a.refreshThread()
		return a, nil

	case key.Matches(msg, a.keys.Voice):
		return a.handleVoice()

	case key.Matches(msg, a.keys.PageUp):
		a.viewport.HalfViewUp()
		return a, nil

	case key.Matches(msg, a.keys.PageDown):
		a.viewport.HalfViewDown()
		return a, nil
	}

	if a.focus == focusSidebar {
		return a.handleSidebarKey(msg)
	}
	return a.handleInputKey(msg)
}

// handleInputKey drives the message input line.
func (a *App) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Submit) {
		content := a.input.Value()
		if path, ok := strings.CutPrefix(content, "/attach "); ok {
			a.input.SetValue("")
			return a, a.attachFile(strings.TrimSpace(path))
		}
		if strings.TrimSpace(content) == "" && len(a.pending) == 0 {
			return a, nil
		}
		if a.engine.IsLoading() {
			a.status = "still generating, Esc to stop"
			return a, nil
		}
		attachments := a.pending
		a.pending = nil
		a.input.SetValue("")
		a.status = ""
		return a, a.sendCmd(content, attachments)
	}

	if key.Matches(msg, a.keys.Delete) {
		msgs := a.engine.Messages()
		if len(msgs) > 0 && a.engine.DeleteMessage(msgs[len(msgs)-1].ID) {
			a.store.Reconcile()
			a.sidebar.refresh(a.store)
			a.refreshThread()
		}
		return a, nil
	}

	if key.Matches(msg, a.keys.Up) {
		a.viewport.LineUp(1)
		return a, nil
	}
	if key.Matches(msg, a.keys.Down) {
		a.viewport.LineDown(1)
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// handleSidebarKey drives the session list pane.
func (a *App) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.sidebar.moveUp()

	case key.Matches(msg, a.keys.Down):
		a.sidebar.moveDown()

	case key.Matches(msg, a.keys.Submit):
		if sel := a.sidebar.selected(); sel != nil {
			a.store.Select(sel.ID)
			a.refreshThread()
			a.viewport.GotoBottom()
		}

	case key.Matches(msg, a.keys.Delete):
		if sel := a.sidebar.selected(); sel != nil {
			a.store.Delete(sel.ID)
			a.sidebar.refresh(a.store)
			a.refreshThread()
		}

	case key.Matches(msg, a.keys.Archive):
		if sel := a.sidebar.selected(); sel != nil {
			a.store.ToggleArchive(sel.ID)
			a.sidebar.refresh(a.store)
		}

	case key.Matches(msg, a.keys.Bookmark):
		a.toggleLastBookmark()

	case key.Matches(msg, a.keys.React):
		a.reactToLastAssistant()

	case msg.String() == "f":
		a.sidebar.cycleMode()
		a.sidebar.refresh(a.store)

	case msg.String() == "o":
		if a.sidebar.filter.Sort == sessions.SortTitle {
			a.sidebar.filter.Sort = sessions.SortRecent
		} else {
			a.sidebar.filter.Sort = sessions.SortTitle
		}
		a.sidebar.refresh(a.store)
	}
	return a, nil
}

// handleSearchKey edits the session filter query live.
func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Submit):
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	case key.Matches(msg, a.keys.Cancel):
		a.searching = false
		a.searchInput.Blur()
		a.sidebar.filter.Query = ""
		a.sidebar.refresh(a.store)
		return a, nil
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.sidebar.filter.Query = a.searchInput.Value()
	a.sidebar.refresh(a.store)
	return a, cmd
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.settings
	if p.editing {
		switch {
		case key.Matches(msg, a.keys.Submit):
			p.commitEdit()
		case key.Matches(msg, a.keys.Cancel):
			p.cancelEdit()
		default:
			var cmd tea.Cmd
			p.input, cmd = p.input.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.store.UpdateSettings(p.result())
		a.overlay = overlayNone
		a.status = "settings saved"
	case key.Matches(msg, a.keys.Up):
		p.moveUp()
	case key.Matches(msg, a.keys.Down):
		p.moveDown()
	case msg.String() == "left":
		p.adjust(-1)
	case msg.String() == "right", key.Matches(msg, a.keys.Submit):
		p.adjust(1)
	}
	return a, nil
}

func (a *App) handleTemplatesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := a.templates
	switch {
	case key.Matches(msg, a.keys.Cancel):
		if !p.back() {
			a.overlay = overlayNone
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		p.moveUp()
		return a, nil

	case key.Matches(msg, a.keys.Down):
		p.moveDown()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		if p.browsing {
			p.choose()
			return a, nil
		}
		if prompt, done := p.commitVar(); done {
			a.overlay = overlayNone
			a.input.SetValue(prompt)
			a.input.CursorEnd()
			a.focus = focusInput
			a.input.Focus()
		}
		return a, nil
	}

	if !p.browsing {
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// attachFile ingests a local file and queues it for the next send.
func (a *App) attachFile(path string) tea.Cmd {
	if path == "" {
		a.status = "usage: /attach <path>"
		return nil
	}
	att, err := attach.Ingest(path)
	if err != nil {
		a.status = "attach failed: " + err.Error()
		return nil
	}
	a.pending = append(a.pending, att)
	a.status = fmt.Sprintf("attached %s (%d pending)", att.Name, len(a.pending))
	return nil
}

func (a *App) handleVoice() (tea.Model, tea.Cmd) {
	if a.transcriber == nil || !a.store.Settings().VoiceEnabled {
		a.status = "voice input not available"
		return a, nil
	}
	if a.voiceSession != nil {
		a.voiceSession.Dismiss()
		a.voiceSession = nil
		a.status = "recording dismissed"
		return a, nil
	}
	a.voiceSession = voice.NewSession(context.Background())
	a.status = "recording... C-g to dismiss"
	return a, a.transcribeCmd(a.voiceSession)
}

// =============================================================================
// HELPERS
// =============================================================================

func (a *App) toggleLastBookmark() {
	msgs := a.engine.Messages()
	if len(msgs) == 0 {
		return
	}
	a.engine.ToggleBookmark(msgs[len(msgs)-1].ID)
	a.store.Reconcile()
	a.refreshThread()
}

func (a *App) reactToLastAssistant() {
	msgs := a.engine.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleAssistant && !msgs[i].IsTyping {
			a.engine.AddReaction(msgs[i].ID, "👍")
			a.store.Reconcile()
			a.refreshThread()
			return
		}
	}
}

func (a *App) refreshThread() {
	a.viewport.SetContent(a.thread.render(a.engine.Messages(), a.spin.View()))
}

func (a *App) resize(width, height int) {
	a.width = width
	a.height = height

	mainWidth := width - sidebarWidth - 1
	if mainWidth < 20 {
		mainWidth = 20
	}
	a.viewport.Width = mainWidth
	a.viewport.Height = height - 4
	a.input.Width = mainWidth - 4
	a.sidebar.width = sidebarWidth
	a.sidebar.height = height - 2
	a.thread.setWidth(mainWidth - 2)
	a.refreshThread()
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full frame.
func (a *App) View() string {
	switch a.overlay {
	case overlaySettings:
		return a.settings.render()
	case overlayTemplates:
		return a.templates.render()
	case overlayHelp:
		return a.renderHelp()
	}

	currentID := a.store.CurrentID()
	side := a.sidebar.render(currentID, a.searching, a.searchInput.View())
	main := a.viewport.View() + "\n" + a.input.View() + "\n" + a.statusLine()

	sideBox := lipgloss.NewStyle().Width(sidebarWidth).Render(side)
	return lipgloss.JoinHorizontal(lipgloss.Top, sideBox, " ", main)
}

func (a *App) statusLine() string {
	var parts []string
	if a.engine.IsLoading() {
		parts = append(parts, a.spin.View()+" generating (Esc to stop)")
	}
	settings := a.store.Settings()
	parts = append(parts, settings.Model)
	if a.status != "" {
		parts = append(parts, a.status)
	}
	return a.theme.StatusBar.Render(strings.Join(parts, " · "))
}

func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(a.theme.PanelTitle.Render("Keyboard shortcuts") + "\n\n")
	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.theme.HelpText.Render("Esc to close"))
	return a.theme.PanelBorder.Render(b.String())
}

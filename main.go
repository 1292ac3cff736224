// velianchat - a terminal chat client for remote completion backends.
//
// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/backend"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/config"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/engine"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/sessions"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/store"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/template"
	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml (default ~/.velianchat/config.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("velianchat %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath == "" {
		if configPath, err = config.Path(); err != nil {
			return err
		}
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFromPath(configPath)
	}
	if err != nil {
		return err
	}

	log, logClose, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logClose()
	log.Info().Str("version", Version).Str("driver", cfg.Storage.Driver).Msg("starting velianchat")

	kv, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer kv.Close()

	client := backend.NewClient(cfg.Backend.URL).
		WithAPIKey(cfg.Backend.APIKey).
		WithTimeout(time.Duration(cfg.Backend.TimeoutSecs) * time.Second)

	eng := engine.New(client).WithLogger(log)

	st := sessions.NewStore(kv, eng).WithLogger(log)
	if err := st.Load(); err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	catalog := template.NewCatalog(kv).WithLogger(log)
	if err := catalog.Load(); err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	exportDir, err := defaultExportDir()
	if err != nil {
		return err
	}

	app := ui.New(eng, st, catalog, ui.Options{
		Theme:      cfg.UI.Theme,
		ShowTokens: cfg.UI.ShowTokens,
		ExportDir:  exportDir,
		Logger:     log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Live-reload presentation settings when the config file changes.
	watcher, err := config.NewWatcher(configPath, func(next *config.Config) {
		log.Info().Msg("config reloaded")
		p.Send(ui.ConfigReloadedMsg{
			Theme:      next.UI.Theme,
			ShowTokens: next.UI.ShowTokens,
		})
	})
	if err != nil {
		log.Warn().Err(err).Msg("config watcher unavailable")
	} else {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	// The quit path flushes through the UI; flush again in case the program
	// exited through a panic recovery or signal.
	if err := st.Flush(); err != nil {
		log.Error().Err(err).Msg("final flush failed")
	}
	return nil
}

// openStore selects the kv driver from configuration.
func openStore(sc config.StorageConfig) (store.KV, error) {
	switch sc.Driver {
	case "sqlite":
		return store.NewSQLite(filepath.Join(sc.DataDir, "velianchat.db"))
	default:
		return store.NewFile(sc.DataDir)
	}
}

// newLogger opens the application log file and builds a zerolog logger on
// it. The TUI owns the terminal, so nothing is logged to stderr.
func newLogger(lc config.LogConfig) (zerolog.Logger, func(), error) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(lc.File), 0755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}

	log := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return log, func() { f.Close() }, nil
}

// defaultExportDir returns where session exports are written.
func defaultExportDir() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "exports"), nil
}

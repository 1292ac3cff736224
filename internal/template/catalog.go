// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package template

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/store"
)

// Catalog holds the available templates and persists them, including
// usage counts, to the key-value store.
type Catalog struct {
	mu        sync.Mutex
	kv        store.KV
	templates []*Template
	log       zerolog.Logger
}

// NewCatalog creates a catalog over the given key-value store. Call Load
// before use.
func NewCatalog(kv store.KV) *Catalog {
	return &Catalog{kv: kv, log: zerolog.Nop()}
}

// WithLogger attaches a logger to the catalog.
func (c *Catalog) WithLogger(log zerolog.Logger) *Catalog {
	c.log = log
	return c
}

// Load restores the catalog from the key-value store, seeding the built-in
// samples when nothing is stored yet.
func (c *Catalog) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	templates, err := store.LoadJSON(c.kv, store.KeyTemplates, []*Template(nil))
	if err != nil {
		return err
	}
	if len(templates) == 0 {
		templates = builtinTemplates()
		if err := store.SaveJSON(c.kv, store.KeyTemplates, templates); err != nil {
			c.log.Warn().Err(err).Msg("seed templates failed")
		}
	}
	c.templates = templates
	return nil
}

// All returns a snapshot of the catalog.
func (c *Catalog) All() []*Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Get returns the template with the given ID, or nil.
func (c *Catalog) Get(id string) *Template {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.findLocked(id)
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	seen := make(map[string]bool)
	var out []string
	for _, t := range c.templates {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// ByCategory returns the templates in a category.
func (c *Catalog) ByCategory(category string) []*Template {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []*Template
	for _, t := range c.templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}

// Use resolves the template with collected values and bumps its usage
// counter. The counter is informational; persistence failures only log.
func (c *Catalog) Use(id string, values map[string]string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := c.findLocked(id)
	if t == nil {
		return "", false
	}
	prompt := t.Resolve(values)
	t.UsageCount++
	if err := store.SaveJSON(c.kv, store.KeyTemplates, c.templates); err != nil {
		c.log.Warn().Err(err).Msg("persist templates failed")
	}
	return prompt, true
}

// Add appends a user-created template and persists the catalog.
func (c *Catalog) Add(t *Template) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = append(c.templates, t)
	return store.SaveJSON(c.kv, store.KeyTemplates, c.templates)
}

func (c *Catalog) findLocked(id string) *Template {
	for _, t := range c.templates {
		if t.ID == id {
			return t
		}
	}
	return nil
}

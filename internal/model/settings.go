// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// FontSize is the UI font size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// =============================================================================
// CHAT SETTINGS
// =============================================================================

// ChatSettings is the global chat configuration. Any combination of values
// is valid input to the engine; range validation, if any, belongs to the
// presentation layer.
type ChatSettings struct {
	Model        string   `json:"model"`
	Temperature  float64  `json:"temperature"`
	MaxTokens    int      `json:"max_tokens"`
	SystemPrompt string   `json:"system_prompt"`
	AutoSave     bool     `json:"auto_save"`
	DarkMode     bool     `json:"dark_mode"`
	FontSize     FontSize `json:"font_size"`
	Language     string   `json:"language"`
	VoiceEnabled bool     `json:"voice_enabled"`
	AutoTranslate bool    `json:"auto_translate"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() ChatSettings {
	return ChatSettings{
		Model:        "gemini-2.0-flash",
		Temperature:  0.7,
		MaxTokens:    2048,
		SystemPrompt: "You are a helpful, knowledgeable assistant. Answer clearly and accurately.",
		AutoSave:     true,
		DarkMode:     false,
		FontSize:     FontMedium,
		Language:     "en",
		VoiceEnabled: true,
		AutoTranslate: false,
	}
}

// =============================================================================
// MODEL CATALOG
// =============================================================================

// AIModel describes a completion model selectable in settings.
type AIModel struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Provider       string   `json:"provider"`
	MaxTokens      int      `json:"max_tokens"`
	CostPer1KTokens float64 `json:"cost_per_1k_tokens"`
	Capabilities   []string `json:"capabilities"`
	IsAvailable    bool     `json:"is_available"`
}

// AvailableModels returns the built-in model catalog shown in the settings
// panel. The list is informational; the engine forwards whatever model id
// the settings carry.
func AvailableModels() []AIModel {
	return []AIModel{
		{
			ID:             "gemini-2.0-flash",
			Name:           "Gemini 2.0 Flash",
			Description:    "Google's latest multimodal model",
			Provider:       "Google",
			MaxTokens:      8192,
			CostPer1KTokens: 0.002,
			Capabilities:   []string{"text", "image", "code", "reasoning"},
			IsAvailable:    true,
		},
		{
			ID:             "gpt-4-turbo",
			Name:           "GPT-4 Turbo",
			Description:    "OpenAI model with strong reasoning",
			Provider:       "OpenAI",
			MaxTokens:      4096,
			CostPer1KTokens: 0.01,
			Capabilities:   []string{"text", "code", "reasoning", "analysis"},
			IsAvailable:    true,
		},
		{
			ID:             "claude-3-sonnet",
			Name:           "Claude 3 Sonnet",
			Description:    "Anthropic model, safe and helpful",
			Provider:       "Anthropic",
			MaxTokens:      4096,
			CostPer1KTokens: 0.003,
			Capabilities:   []string{"text", "code", "analysis", "creative"},
			IsAvailable:    true,
		},
	}
}

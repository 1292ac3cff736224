// Copyright (c) 2025 Velian Tech
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Velian-Tech/Chat-AI-Velianstore/internal/model"
)

// Configuration constants for the completion endpoint.
const (
	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize caps the response body read.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB
)

// Sentinel errors for the completion client.
var (
	// ErrNotConfigured indicates the backend URL is not set.
	ErrNotConfigured = errors.New("completion backend not configured")

	// ErrGeneration is the uniform failure for non-OK statuses, transport
	// errors, and malformed responses.
	ErrGeneration = errors.New("generation failed")
)

// sharedHTTPClient pools connections across all completion requests.
// Timeouts are applied per request through the caller's context.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

// =============================================================================
// WIRE TYPES
// =============================================================================

// CompletionRequest is the request body: the full prior history plus the
// new user turn, and the settings in effect for this send.
type CompletionRequest struct {
	Messages []*model.Message   `json:"messages"`
	Settings model.ChatSettings `json:"settings"`
}

// Completion is the response body of a successful request.
type Completion struct {
	Content string `json:"content"`
	Tokens  int    `json:"tokens,omitempty"`
	Model   string `json:"model,omitempty"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the completion endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a completion client for the given base URL. An empty
// URL produces a client whose Complete calls fail with ErrNotConfigured.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		httpClient: sharedHTTPClient,
		timeout:    DefaultTimeout,
	}
}

// WithAPIKey sets the bearer token sent with each request.
func (c *Client) WithAPIKey(key string) *Client {
	c.apiKey = strings.TrimSpace(key)
	return c
}

// WithTimeout sets the per-request timeout. Zero disables the client-side
// timeout entirely; the caller's context still bounds the request.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.timeout = timeout
	return c
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// IsConfigured returns true if a backend URL is set.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

// Complete issues one completion request and decodes the response.
//
// Cancellation of ctx surfaces as context.Canceled; every other failure
// wraps ErrGeneration. There is no automatic retry: the only recovery path
// after a failure is the user resubmitting the message.
func (c *Client) Complete(ctx context.Context, messages []*model.Message, settings model.ChatSettings) (*Completion, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(CompletionRequest{Messages: messages, Settings: settings})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrGeneration, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrGeneration, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Cancellation must stay distinguishable from transport failure.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	data, err := readLimited(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: read response: %v", ErrGeneration, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", ErrGeneration, resp.StatusCode)
	}

	var completion Completion
	if err := json.Unmarshal(data, &completion); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrGeneration, err)
	}

	return &completion, nil
}

// IsCancellation reports whether err represents a cancelled request rather
// than a generation failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}

// readLimited reads the response body with a size cap.
func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxResponseSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return data, nil
}

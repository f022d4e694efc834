// Copyright (c) 2025 Knowledge Hub
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package gateway implements the REST client for the Knowledge Hub backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/knowhub/hubchat-tui/internal/model"
)

// Configuration constants for the backend gateway.
const (
	// DefaultTimeout is the default timeout for gateway requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps how much of a response body is read (10MB).
	MaxResponseSize = 10 * 1024 * 1024

	// DefaultPageSize is the history page size used when none is configured.
	DefaultPageSize = 20
)

// Error variables for common gateway failures.
var (
	// ErrEmptyBaseURL indicates the client was constructed without a URL.
	ErrEmptyBaseURL = errors.New("gateway base URL not configured")

	// ErrEmptySender indicates a send was attempted without a sender name.
	ErrEmptySender = errors.New("sender name is empty")
)

// Error represents a non-success HTTP response from the gateway.
type Error struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("gateway error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("gateway error (HTTP %d)", e.Status)
}

// sharedHTTPClient pools connections across all gateway requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the Knowledge Hub backend over REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a gateway client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// WithHTTPClient overrides the HTTP client, primarily for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the configured gateway base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// HISTORY
// =============================================================================

// FetchPage retrieves one page of history at the given offset. Results are
// returned exactly as the backend orders them: most-recent-first. A page
// shorter than limit means history is exhausted.
func (c *Client) FetchPage(ctx context.Context, limit, offset int) ([]model.RawRecord, error) {
	if c.baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	endpoint := c.baseURL + "/messages/?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create page request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var page model.PageResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode page response: %w", err)
	}
	return page.Results, nil
}

// =============================================================================
// CREATION
// =============================================================================

// textPayload is the JSON body for text message creation.
type textPayload struct {
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	Type       string `json:"type"`
}

// SendText persists a text message and returns the backend's record.
func (c *Client) SendText(ctx context.Context, sender, content string) (model.RawRecord, error) {
	if c.baseURL == "" {
		return model.RawRecord{}, ErrEmptyBaseURL
	}
	if sender == "" {
		return model.RawRecord{}, ErrEmptySender
	}

	payload, err := json.Marshal(textPayload{
		SenderName: sender,
		Content:    content,
		Type:       model.KindText.String(),
	})
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("marshal text payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages/", bytes.NewReader(payload))
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("create text request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doRecord(req)
}

// SendVoice persists a voice note from the given audio stream and returns the
// backend's record.
func (c *Client) SendVoice(ctx context.Context, sender, filename string, audio io.Reader) (model.RawRecord, error) {
	return c.sendMultipart(ctx, "/voice_notes/", "voice_file", sender, filename, audio)
}

// SendFile persists an arbitrary file attachment and returns the backend's
// record.
func (c *Client) SendFile(ctx context.Context, sender, filename string, file io.Reader) (model.RawRecord, error) {
	return c.sendMultipart(ctx, "/files/", "file", sender, filename, file)
}

// sendMultipart posts a sender_name field plus one file part to a creation
// endpoint. The body is buffered in memory; voice notes and chat attachments
// are small.
func (c *Client) sendMultipart(ctx context.Context, path, field, sender, filename string, r io.Reader) (model.RawRecord, error) {
	if c.baseURL == "" {
		return model.RawRecord{}, ErrEmptyBaseURL
	}
	if sender == "" {
		return model.RawRecord{}, ErrEmptySender
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("sender_name", sender); err != nil {
		return model.RawRecord{}, fmt.Errorf("write sender field: %w", err)
	}
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return model.RawRecord{}, fmt.Errorf("copy upload body: %w", err)
	}
	if err := w.Close(); err != nil {
		return model.RawRecord{}, fmt.Errorf("finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.doRecord(req)
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

// doRecord executes a request whose success response is a single RawRecord.
func (c *Client) doRecord(req *http.Request) (model.RawRecord, error) {
	body, err := c.do(req)
	if err != nil {
		return model.RawRecord{}, err
	}
	var rec model.RawRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return model.RawRecord{}, fmt.Errorf("decode record response: %w", err)
	}
	return rec, nil
}

// do executes a request and returns the response body, converting non-2xx
// responses into *Error.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Body: errorSnippet(body)}
	}
	return body, nil
}

// errorSnippet trims an error body to a log-friendly single line.
func errorSnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	s = strings.ReplaceAll(s, "\n", " ")
	const max = 200
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

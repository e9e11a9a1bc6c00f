package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	baseURL = "https://slack.com"

	postMessagePath   = "/api/chat.postMessage"
	deleteMessagePath = "/api/chat.delete"

	timeout = 10 * time.Second
	maxSize = 1 << 20 // 1 MiB.
)

// Config holds the two Slack secrets the bot needs. It is populated once
// at startup and passed by reference into collaborators, never read from
// the process environment at call sites.
type Config struct {
	// BotToken authenticates Web API calls ("xoxb-...").
	BotToken string
	// SigningSecret verifies inbound webhook signatures.
	SigningSecret string
	// APIBaseURL overrides the Web API base URL. Empty means slack.com;
	// tests point it at a local fake.
	APIBaseURL string
}

// APIError is a Slack Web API call that failed at the HTTP level, or
// that returned "ok": false in its body. Slack reports most failures
// inside an HTTP 200 response, so the status code alone proves nothing.
type APIError struct {
	Method     string
	StatusCode int
	Reason     string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Slack API %s failed with status %d: %s", e.Method, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("Slack API error in %s: %s", e.Method, e.Reason)
}

// apiResponse is the envelope common to all Slack Web API responses.
type apiResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Client makes authenticated calls to the Slack Web API, and
// unauthenticated calls to per-event response URLs.
type Client struct {
	cfg  Config
	base string
	http *http.Client
}

// NewClient returns a Slack client using the given secrets.
func NewClient(cfg Config) *Client {
	base := cfg.APIBaseURL
	if base == "" {
		base = baseURL
	}
	return &Client{
		cfg:  cfg,
		base: base,
		http: &http.Client{Timeout: timeout},
	}
}

// PostMessage posts a Block Kit message to a channel.
func (c *Client) PostMessage(ctx context.Context, channel string, blocks []Block) error {
	return c.call(ctx, postMessagePath, map[string]any{
		"channel": channel,
		"blocks":  blocks,
	})
}

// DeleteMessage removes a previously posted message, identified by its
// channel and timestamp.
func (c *Client) DeleteMessage(ctx context.Context, channel, ts string) error {
	return c.call(ctx, deleteMessagePath, map[string]any{
		"channel": channel,
		"ts":      ts,
	})
}

// call sends a bearer-authenticated JSON request to a Web API method,
// and checks the success flag that Slack embeds in the response body.
func (c *Client) call(ctx context.Context, path string, payload any) error {
	if c.cfg.BotToken == "" {
		return errors.New("Slack bot token is not configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to construct HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.BotToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxSize))
	if err != nil {
		return fmt.Errorf("failed to read HTTP response body: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("method", path).Int("status", resp.StatusCode).
		Str("body", string(respBody)).Msg("Slack API response")

	if resp.StatusCode != http.StatusOK {
		return &APIError{Method: path, StatusCode: resp.StatusCode, Reason: string(respBody)}
	}

	decoded := &apiResponse{}
	if err := json.Unmarshal(respBody, decoded); err != nil {
		return fmt.Errorf("failed to parse JSON in HTTP response body: %w", err)
	}
	if !decoded.OK {
		return &APIError{Method: path, Reason: decoded.Error}
	}

	return nil
}

// Respond sends a JSON payload to an event's single-use response URL.
// No auth header: possession of the URL is the authorization.
func (c *Client) Respond(ctx context.Context, responseURL string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, responseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to construct HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Method: "response_url", StatusCode: resp.StatusCode, Reason: resp.Status}
	}

	return nil
}

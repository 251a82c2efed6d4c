// Package gateway is the thin fetch/normalize layer between the admin
// engine and the remote question-bank API. It converts the legacy flat
// wire shapes to domain objects at this boundary and nowhere else.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ccmg/qbank-admin/internal/model"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client talks to the remote question-bank API.
type Client struct {
	baseURL string
	courses map[model.Category]string
	tokens  TokenSource
	http    *http.Client
	log     zerolog.Logger
}

// New creates a gateway client. courses maps each category to the course
// id that keys its multiple-choice endpoints.
func New(baseURL string, courses map[model.Category]string, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		courses: courses,
		tokens:  tokens,
		http:    &http.Client{},
		log:     log.With().Str("component", "gateway").Logger(),
	}
}

// courseID resolves the configured course id for a category. Multiple-choice
// routes cannot be built without it, so a missing mapping fails before any
// request is issued.
func (c *Client) courseID(category model.Category) (string, error) {
	id := strings.TrimSpace(c.courses[category])
	if id == "" {
		return "", fmt.Errorf("chưa cấu hình courseId cho category %q", category)
	}
	return id, nil
}

// envelope is the server's response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Details []FieldDetail   `json:"details"`
}

// do issues a request and decodes the envelope's data into out (when out
// is non-nil). Non-2xx responses become *APIError.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if strings.Contains(res.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(raw, &env); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	} else if text := strings.TrimSpace(string(raw)); text != "" {
		env.Message = text
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := newAPIError(res.StatusCode, env.Message, env.Details)
		c.log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", res.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Msg("request rejected")
		return apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}

// Package api is a typed client for the InstaAuto REST API. All state lives
// server-side; this package only shuttles JSON and keeps the bearer session
// alive across access-token expiry.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shivakharbanda/cm-front/internal/session"
)

const apiPrefix = "/api/v1"

var (
	// ErrUnauthenticated means no access token is stored; the caller should
	// send the user to login rather than issue the request.
	ErrUnauthenticated = errors.New("not logged in")

	// ErrSessionExpired means a 401 was hit and the one-shot token refresh
	// also failed. Tokens have been cleared by the time this is returned.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == status
}

// Client talks to one API deployment on behalf of one session. Safe for
// concurrent use from bubbletea command goroutines.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Store
	log     zerolog.Logger

	// Serializes token refresh so concurrent 401s share a single refresh
	// instead of racing each other's refresh token.
	refreshMu sync.Mutex
}

func New(baseURL string, sess *session.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		session: sess,
		log:     log,
	}
}

// Session exposes the token store for callers that need the local
// authentication check (the TUI gate, whoami).
func (c *Client) Session() *session.Store {
	return c.session
}

// send performs one HTTP round trip. Non-2xx responses come back as *Error;
// transport failures come back wrapped so they read as connectivity problems.
func (c *Client) send(ctx context.Context, method, path, token string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("reaching API: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg(apiErr.Message)
		return nil, apiErr
	}
	return data, nil
}

// errorMessage pulls a human-readable message out of an error body. The
// backend sends {"detail": "..."}; anything else is used verbatim.
func errorMessage(data []byte, status int) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}

// authedSend issues an authenticated request, refreshing the token pair at
// most once on 401 and retrying at most once. Any other failure is returned
// as-is. A failed refresh clears the session.
func (c *Client) authedSend(ctx context.Context, method, path string, body any) ([]byte, error) {
	token := c.session.AccessToken()
	if token == "" {
		return nil, ErrUnauthenticated
	}

	data, err := c.send(ctx, method, path, token, body)
	if !IsStatus(err, http.StatusUnauthorized) {
		return data, err
	}

	fresh, refreshErr := c.refreshAccess(ctx, token)
	if refreshErr != nil {
		c.session.Clear()
		c.log.Info().Err(refreshErr).Msg("token refresh failed, session cleared")
		return nil, fmt.Errorf("%w (%v)", ErrSessionExpired, refreshErr)
	}
	return c.send(ctx, method, path, fresh, body)
}

// refreshAccess exchanges the refresh token for a new pair. stale is the
// access token that just failed: if another goroutine already refreshed
// while we waited on the lock, its result is reused instead of burning the
// refresh token again.
func (c *Client) refreshAccess(ctx context.Context, stale string) (string, error) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.session.AccessToken(); current != "" && current != stale {
		return current, nil
	}

	refresh := c.session.RefreshToken()
	if refresh == "" {
		return "", errors.New("no refresh token")
	}

	data, err := c.send(ctx, http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}
	var tokens TokenResponse
	if err := json.Unmarshal(data, &tokens); err != nil {
		return "", fmt.Errorf("decoding refresh response: %w", err)
	}
	if err := c.session.SetTokens(tokens.AccessToken, tokens.RefreshToken); err != nil {
		c.log.Warn().Err(err).Msg("persisting refreshed tokens")
	}
	c.log.Debug().Msg("access token refreshed")
	return tokens.AccessToken, nil
}

// get/post/put/del decode JSON into out (out may be nil for empty bodies).

func (c *Client) get(ctx context.Context, path string, out any) error {
	data, err := c.authedSend(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := c.authedSend(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	data, err := c.authedSend(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	_, err := c.authedSend(ctx, http.MethodDelete, path, nil)
	return err
}

// download fetches a binary export. The payload is returned verbatim — no
// JSON parsing — so CSV/XLSX exports pass through untouched.
func (c *Client) download(ctx context.Context, path string) ([]byte, error) {
	return c.authedSend(ctx, http.MethodGet, path, nil)
}

// publicGet/publicPost hit the unauthenticated surface.

func (c *Client) publicGet(ctx context.Context, path string, out any) error {
	data, err := c.send(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func (c *Client) publicPost(ctx context.Context, path string, body, out any) error {
	data, err := c.send(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return err
	}
	return decode(data, out)
}

func decode(data []byte, out any) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// query renders url.Values as a query suffix, empty when no params are set.
func query(v url.Values) string {
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

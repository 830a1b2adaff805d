// Package auth provides the login/logout client for the recipe backend and
// the bearer-token contract shared with the rest of the app.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// TokenKey is the fixed credential-store key the bearer token lives under.
const TokenKey = "accessToken"

// ── Wire types ───────────────────────────────────────────────────

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse is the success envelope. The backend is inconsistent about
// the success marker: some deployments send boolean true, others integer 1.
type loginResponse struct {
	Data struct {
		Token string `json:"token"`
	} `json:"data"`
	Success *BoolOrInt `json:"success"`
}

// errorResponse is the alternate error-shaped envelope the backend sends on
// rejected logins.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BoolOrInt decodes a JSON value that may be either a boolean or an integer.
type BoolOrInt struct {
	Bool  bool
	Int   int
	IsInt bool
}

// UnmarshalJSON accepts true/false or a bare integer; anything else fails.
func (v *BoolOrInt) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*v = BoolOrInt{Bool: b}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = BoolOrInt{Int: n, IsInt: true}
		return nil
	}
	return fmt.Errorf("auth: success is neither bool nor int: %s", data)
}

// Truthy reports whether the marker means success: boolean true or integer 1.
func (v *BoolOrInt) Truthy() bool {
	if v == nil {
		return false
	}
	if v.IsInt {
		return v.Int == 1
	}
	return v.Bool
}

// ── Client ───────────────────────────────────────────────────────

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client talks to the backend's auth endpoints and keeps the bearer token
// in the injected credential store.
type Client struct {
	baseURL string
	creds   domain.CredentialStore
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates an auth client. baseURL is the service root, without a
// trailing slash (e.g. "https://api.example.com").
func NewClient(baseURL string, creds domain.CredentialStore, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// IsLoggedIn reports whether a bearer token is currently stored.
func (c *Client) IsLoggedIn() bool {
	_, err := c.creds.Get(TokenKey)
	return err == nil
}

// Login authenticates with the backend and stores the returned token under
// TokenKey. A response without a truthy success marker is a failure; the
// failure message is taken from the error-shaped body when decodable.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return fmt.Errorf("auth: marshal login request: %w", err)
	}

	url := c.baseURL + "/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("auth: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("auth: POST %s (user=%s)", url, username)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth: login request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("auth: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("auth: %w: %s", domain.ErrLoginFailed, failureMessage(respBody))
	}

	var login loginResponse
	if err := json.Unmarshal(respBody, &login); err == nil && login.Success.Truthy() && login.Data.Token != "" {
		if err := c.creds.Set(TokenKey, login.Data.Token); err != nil {
			return fmt.Errorf("auth: store token: %w", err)
		}
		c.log.Info("auth: logged in as %s", username)
		return nil
	}

	return fmt.Errorf("auth: %w: %s", domain.ErrLoginFailed, failureMessage(respBody))
}

// Logout removes the stored token, then notifies the backend. The token is
// deleted before the request goes out: logout is complete locally whatever
// the network does, but a network failure is still reported to the caller.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.creds.Delete(TokenKey); err != nil {
		return fmt.Errorf("auth: clear token: %w", err)
	}

	url := c.baseURL + "/auth/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("auth: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("auth: POST %s", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth: logout request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("auth: logout rejected: %s", resp.Status)
	}

	c.log.Info("auth: logged out")
	return nil
}

// IsLoginFailure reports whether err is a rejected login (as opposed to a
// transport problem).
func IsLoginFailure(err error) bool {
	return errors.Is(err, domain.ErrLoginFailed)
}

// failureMessage extracts a user-facing message from an error-shaped body,
// falling back to a generic one.
func failureMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return "invalid response"
}

// Package taxonomy resolves the recipe-type list through a fallback chain:
// remote service, then on-disk cache, then bundled defaults. The resolver
// always produces a list; every stage failure just moves to the next stage.
package taxonomy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zkamal/recipebox/internal/auth"
	"github.com/zkamal/recipebox/internal/domain"
	"github.com/zkamal/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.TypeSource = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// Client fetches recipe types from the remote service. Requests carry the
// bearer token from the credential store; without one, no request is made.
type Client struct {
	baseURL string
	creds   domain.CredentialStore
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a recipe-type client against the given service root.
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

// Types fetches the taxonomy. It returns domain.ErrNotLoggedIn without
// touching the network when no token is stored, and an error for any
// non-2xx status, undecodable body, or empty list.
func (c *Client) Types(ctx context.Context) ([]domain.RecipeType, error) {
	token, err := c.creds.Get(auth.TokenKey)
	if err != nil {
		return nil, domain.ErrNotLoggedIn
	}

	url := c.baseURL + "/recipetypes"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	c.log.Debug("taxonomy: GET %s", url)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("taxonomy: API %s", resp.Status)
	}

	var types []domain.RecipeType
	if err := json.Unmarshal(body, &types); err != nil {
		return nil, fmt.Errorf("taxonomy: unmarshal response: %w", err)
	}
	if len(types) == 0 {
		return nil, fmt.Errorf("taxonomy: empty type list")
	}

	c.log.Debug("taxonomy: fetched %d types", len(types))
	return types, nil
}

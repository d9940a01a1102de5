// Package oauth implements the client_credentials token flow both platform
// APIs authenticate with.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Client fetches and caches bearer tokens for one token endpoint. Tokens are
// cached slightly short of their advertised lifetime so a token handed out is
// always usable for a request in flight.
type Client struct {
	tokenURL     string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	tokens       *gocache.Cache
}

// tokenSafety is shaved off expires_in before caching.
const tokenSafety = 30 * time.Second

// NewClient creates a token client for the given endpoint and credentials.
func NewClient(tokenURL, clientID, clientSecret string, timeout time.Duration) *Client {
	return &Client{
		tokenURL:     tokenURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: timeout},
		tokens:       gocache.New(gocache.NoExpiration, time.Minute),
	}
}

// Token returns a cached access token or fetches a fresh one.
func (c *Client) Token(ctx context.Context) (string, error) {
	if tok, found := c.tokens.Get(c.clientID); found {
		return tok.(string), nil
	}
	return c.refresh(ctx)
}

// Invalidate drops the cached token. Callers use it after a 401 so the next
// Token call re-authenticates.
func (c *Client) Invalidate() {
	c.tokens.Delete(c.clientID)
}

func (c *Client) refresh(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access_token")
	}

	ttl := time.Duration(payload.ExpiresIn)*time.Second - tokenSafety
	if ttl < tokenSafety {
		ttl = tokenSafety
	}
	c.tokens.Set(c.clientID, payload.AccessToken, ttl)

	return payload.AccessToken, nil
}

package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
)

// Client encapsulates outbound HTTP calls to the Supabase backend: the
// GoTrue auth endpoints and the PostgREST table API.
type Client struct {
	baseURL    *url.URL
	anonKey    string
	httpClient *http.Client
}

// New constructs a Client for the given project URL and anon key.
func New(rawURL, anonKey string, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(rawURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse supabase url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("supabase url %q has no scheme or host", rawURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: base, anonKey: anonKey, httpClient: httpClient}, nil
}

// AuthorizationURL builds the hosted consent URL for the given provider.
// The browser is sent here to start the OAuth flow; Supabase redirects back
// to redirectTo with a one-time authorization code.
func (c *Client) AuthorizationURL(provider, redirectTo string) (string, error) {
	if strings.TrimSpace(provider) == "" {
		return "", fmt.Errorf("provider is required")
	}
	authorize := c.endpoint("/auth/v1/authorize")
	params := authorize.Query()
	params.Set("provider", provider)
	if strings.TrimSpace(redirectTo) != "" {
		params.Set("redirect_to", redirectTo)
	}
	authorize.RawQuery = params.Encode()
	return authorize.String(), nil
}

// ExchangeCode swaps a one-time authorization code for a session.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*domain.Session, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("auth code is required")
	}

	endpoint := c.endpoint("/auth/v1/token")
	params := endpoint.Query()
	params.Set("grant_type", "pkce")
	endpoint.RawQuery = params.Encode()

	payload, err := json.Marshal(map[string]string{"auth_code": code})
	if err != nil {
		return nil, fmt.Errorf("encode exchange request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuthHeaders(req, "")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if strings.TrimSpace(session.AccessToken) == "" {
		return nil, fmt.Errorf("exchange response missing access token")
	}
	if strings.TrimSpace(session.User.Email) == "" {
		return nil, fmt.Errorf("exchange response missing user email")
	}
	return &session, nil
}

// SignOut revokes the session's tokens on the backend.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	endpoint := c.endpoint("/auth/v1/logout")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build sign-out request: %w", err)
	}
	c.setAuthHeaders(req, accessToken)

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// AuthorizedUser fetches the authorized_users row for the given email via
// PostgREST. A missing row returns (nil, nil).
func (c *Client) AuthorizedUser(ctx context.Context, email string) (*domain.AuthorizedUser, error) {
	endpoint := c.endpoint("/rest/v1/authorized_users")
	params := endpoint.Query()
	params.Set("select", "*")
	params.Set("email", "eq."+email)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build role request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.setAuthHeaders(req, "")

	body, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("query authorized_users: %w", err)
	}

	var rows []domain.AuthorizedUser
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode authorized_users: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// Health pings the GoTrue health endpoint.
func (c *Client) Health(ctx context.Context) error {
	endpoint := c.endpoint("/auth/v1/health")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}
	c.setAuthHeaders(req, "")

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("auth health: %w", err)
	}
	return nil
}

func (c *Client) endpoint(path string) *url.URL {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return &u
}

func (c *Client) setAuthHeaders(req *http.Request, accessToken string) {
	req.Header.Set("apikey", c.anonKey)
	token := accessToken
	if strings.TrimSpace(token) == "" {
		token = c.anonKey
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		if msg := errorMessage(body); msg != "" {
			return nil, fmt.Errorf("status=%d: %s", resp.StatusCode, msg)
		}
		return nil, fmt.Errorf("status=%d", resp.StatusCode)
	}
	return body, nil
}

func errorMessage(body []byte) string {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	for _, key := range []string{"error_description", "msg", "message", "error"} {
		if s, ok := raw[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

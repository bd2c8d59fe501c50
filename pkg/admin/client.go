// Package admin is a client for the legacy catalogue REST backend. Reads are
// public; writes go through a Session obtained by logging in.
package admin

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
	"time"
)

// APIError is returned for non-2xx responses.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("admin api returned %d: %s", e.Status, e.Message)
}

// ErrEmptyToken is returned when login succeeds without issuing a token.
var ErrEmptyToken = errors.New("admin api issued an empty token")

// Client calls the REST backend rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client. A nil hc uses a client with a 15 second timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(raw, &msg) != nil || msg.Message == "" {
			msg.Message = strings.TrimSpace(string(raw))
		}
		return &APIError{Status: resp.StatusCode, Message: msg.Message}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Login exchanges credentials for a new Session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", creds)
}

// Register creates an administrator and returns a Session for it.
func (c *Client) Register(ctx context.Context, reg Registration) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	var auth authResponse
	if err := c.do(ctx, http.MethodPost, path, "", body, &auth); err != nil {
		return nil, err
	}
	if auth.Token == "" {
		return nil, ErrEmptyToken
	}
	return &Session{client: c, token: auth.Token, Admin: auth.Admin}, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.get(ctx, "/api/categories", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := c.get(ctx, "/api/categories/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Products lists products, optionally filtered by design type.
func (c *Client) Products(ctx context.Context, productType string) ([]Product, error) {
	path := "/api/products"
	if productType != "" {
		path += "?" + url.Values{"type": {productType}}.Encode()
	}
	var out []Product
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.get(ctx, "/api/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	var out []Product
	if err := c.get(ctx, "/api/products/category/"+url.PathEscape(categoryID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.get(ctx, "/api/posts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Post(ctx context.Context, id string) (*Post, error) {
	var out Post
	if err := c.get(ctx, "/api/posts/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PublishedPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.get(ctx, "/api/posts/published", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	var out Post
	if err := c.get(ctx, "/api/posts/slug/"+url.PathEscape(slug), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package admin

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
)

// ErrSessionClosed is returned by any call made after Logout.
var ErrSessionClosed = errors.New("admin session is closed")

// Session is an authenticated administrator. It is created by Login or
// Register and destroyed by Logout; there is no process-wide token.
type Session struct {
	client *Client
	Admin  Admin

	mu    sync.RWMutex
	token string
}

// Active reports whether the session still holds a token.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Logout discards the token. Further calls fail with ErrSessionClosed.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

func (s *Session) send(ctx context.Context, method, path string, body, out any) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return ErrSessionClosed
	}
	return s.client.do(ctx, method, path, token, body, out)
}

func (s *Session) CreateCategory(ctx context.Context, c Category) (*Category, error) {
	var out Category
	if err := s.send(ctx, http.MethodPost, "/api/categories", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateCategory(ctx context.Context, id string, c Category) (*Category, error) {
	var out Category
	if err := s.send(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	return s.send(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

func (s *Session) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var out Product
	if err := s.send(ctx, http.MethodPost, "/api/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdateProduct(ctx context.Context, id string, p Product) (*Product, error) {
	var out Product
	if err := s.send(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeleteProduct(ctx context.Context, id string) error {
	return s.send(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

func (s *Session) CreatePost(ctx context.Context, p Post) (*Post, error) {
	var out Post
	if err := s.send(ctx, http.MethodPost, "/api/posts", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) UpdatePost(ctx context.Context, id string, p Post) (*Post, error) {
	var out Post
	if err := s.send(ctx, http.MethodPut, "/api/posts/"+url.PathEscape(id), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) DeletePost(ctx context.Context, id string) error {
	return s.send(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, nil)
}

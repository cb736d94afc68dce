// Package memory implementa cache.Client in-process sobre go-cache.
package memory

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/herothreads/api/internal/cache"
)

type Client struct {
	c *gocache.Cache
}

var _ cache.Client = (*Client)(nil)

func New(defaultTTL time.Duration) *Client {
	if defaultTTL <= 0 {
		defaultTTL = 2 * time.Minute
	}
	return &Client{c: gocache.New(defaultTTL, time.Minute)}
}

func (m *Client) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.c.Get(key)
	if !ok {
		return "", cache.ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *Client) Delete(ctx context.Context, key string) error {
	m.c.Delete(key)
	return nil
}

func (m *Client) Ping(ctx context.Context) error { return nil }
func (m *Client) Close() error                   { return nil }

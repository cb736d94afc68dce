// Package redis implementa cache.Client sobre go-redis.
package redis

import (
	"context"
	"time"

	rdb "github.com/redis/go-redis/v9"

	"github.com/herothreads/api/internal/cache"
)

type Client struct {
	c      *rdb.Client
	prefix string
}

var _ cache.Client = (*Client)(nil)

func New(addr string, db int, prefix string) *Client {
	return &Client{
		c:      rdb.NewClient(&rdb.Options{Addr: addr, DB: db}),
		prefix: prefix,
	}
}

// Raw expone el cliente subyacente (lo usa el rate limiter distribuido).
func (r *Client) Raw() *rdb.Client { return r.c }

func (r *Client) key(k string) string { return r.prefix + k }

func (r *Client) Get(ctx context.Context, key string) (string, error) {
	v, err := r.c.Get(ctx, r.key(key)).Result()
	if err == rdb.Nil {
		return "", cache.ErrNotFound
	}
	return v, err
}

func (r *Client) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.c.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *Client) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, r.key(key)).Err()
}

func (r *Client) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }
func (r *Client) Close() error                   { return r.c.Close() }

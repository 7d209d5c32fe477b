package cache

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable is returned when the cache backend is unreachable. Callers
// treat it as a degradation signal, never as a request failure.
var ErrUnavailable = errors.New("cache unavailable")

// Client wraps redis.Client with a process-wide reachability flag. Every
// operation checks the flag first and short-circuits without touching the
// network while the backend is down, so a degraded cache cannot stall
// request handling.
type Client struct {
	client    *redis.Client
	available atomic.Bool
	opTimeout time.Duration
}

// New creates a Redis-backed cache client. The connection hook marks the
// backend reachable as soon as a connection is established; transport errors
// mark it unreachable again.
func New(addr, password string, db int, opTimeout time.Duration) *Client {
	c := &Client{opTimeout: opTimeout}
	c.client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		OnConnect: func(ctx context.Context, cn *redis.Conn) error {
			c.available.Store(true)
			return nil
		},
	})
	return c
}

// Available reports whether the backend was reachable at last contact.
func (c *Client) Available() bool {
	return c != nil && c.client != nil && c.available.Load()
}

// StartHealthCheck probes the backend immediately and then on every tick,
// flipping the reachability flag. Required because operations short-circuit
// while the flag is down, so nothing else would ever reconnect.
func (c *Client) StartHealthCheck(ctx context.Context, interval time.Duration) {
	if c == nil || c.client == nil {
		return
	}
	c.ping(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.ping(ctx)
			}
		}
	}()
}

func (c *Client) ping(ctx context.Context) {
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		if c.available.Swap(false) {
			log.Printf("cache: backend unreachable: %v", err)
		}
		return
	}
	if !c.available.Swap(true) {
		log.Printf("cache: backend reachable")
	}
}

// Get returns the value, nil on a miss, or ErrUnavailable while degraded.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Available() {
		return nil, ErrUnavailable
	}
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.markDown(err)
		return nil, ErrUnavailable
	}
	return res, nil
}

// Set stores value with TTL. Best-effort: returns ErrUnavailable while
// degraded instead of failing the caller.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Available() {
		return ErrUnavailable
	}
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.markDown(err)
		return ErrUnavailable
	}
	return nil
}

// Delete removes a key, best-effort.
func (c *Client) Delete(ctx context.Context, key string) error {
	if !c.Available() {
		return ErrUnavailable
	}
	ctx, cancel := c.boundCtx(ctx)
	defer cancel()
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.markDown(err)
		return ErrUnavailable
	}
	return nil
}

func (c *Client) markDown(err error) {
	if c.available.Swap(false) {
		log.Printf("cache: backend unreachable: %v", err)
	}
}

func (c *Client) boundCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opTimeout)
}

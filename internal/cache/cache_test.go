package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClient_DegradedShortCircuit(t *testing.T) {
	// Never connected, so the reachability flag stays down and every
	// operation must return ErrUnavailable without touching the network.
	c := New("127.0.0.1:1", "", 0, 100*time.Millisecond)
	ctx := context.Background()

	assert.False(t, c.Available())

	val, err := c.Get(ctx, "session:abc")
	assert.Nil(t, val)
	assert.ErrorIs(t, err, ErrUnavailable)

	assert.ErrorIs(t, c.Set(ctx, "session:abc", []byte("x"), time.Minute), ErrUnavailable)
	assert.ErrorIs(t, c.Delete(ctx, "session:abc"), ErrUnavailable)
}

func TestClient_NilSafe(t *testing.T) {
	var c *Client
	assert.False(t, c.Available())
}

func TestClient_HealthCheckMarksDown(t *testing.T) {
	c := New("127.0.0.1:1", "", 0, 50*time.Millisecond)
	c.available.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartHealthCheck(ctx, time.Hour)

	assert.False(t, c.Available())
}

package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// TestRedis is an in-process Redis server and a client pointed at it
type TestRedis struct {
	Server *miniredis.Miniredis
	Client redis.UniversalClient
}

// NewTestRedis starts a miniredis server that is shut down when the test ends
func NewTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err(), "miniredis not reachable")

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return &TestRedis{Server: mr, Client: client}
}

// FlushAll clears every key between subtests
func (r *TestRedis) FlushAll() {
	r.Server.FlushAll()
}

// Package testutil provides helpers for tests that need Redis or fake upstream services.
//
// Redis Setup:
//
//	client, mr := testutil.SetupRedis(t)
//	store := repository.NewRedisStore(client)
//	mr.FastForward(time.Minute)
//
// Fake upstreams:
//
//	token := testutil.NewTokenServer(t, "access-token", 3600)
//	defer token.Close()
package testutil

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// SetupRedis starts an in-process Redis server and returns a client connected to it.
// Both are closed when the test finishes.
func SetupRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
)

// RedisStore shares credentials between gateway instances through Redis.
// Entries expire at the credential's refresh deadline.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore constructs a Redis-backed credential store.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Get loads and decodes the credential, returning nil when the key is absent.
func (s *RedisStore) Get(ctx context.Context, key string) (*credentialDomain.Credential, error) {
	payload, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load credential: %w", err)
	}

	var credential credentialDomain.Credential
	if err := json.Unmarshal(payload, &credential); err != nil {
		return nil, fmt.Errorf("decode credential: %w", err)
	}
	return &credential, nil
}

// Set persists the credential with a TTL ending at its refresh deadline.
func (s *RedisStore) Set(ctx context.Context, key string, credential *credentialDomain.Credential) error {
	ttl := time.Until(credential.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, key)
	}

	payload, err := json.Marshal(credential)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	return nil
}

// Delete removes the persisted credential.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

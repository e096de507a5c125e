// Package repository provides credential stores used by the token cache.
package repository

import (
	"context"
	"sync"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
)

// MemoryStore keeps credentials in process memory. It is the default store.
type MemoryStore struct {
	mu          sync.RWMutex
	credentials map[string]credentialDomain.Credential
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{credentials: make(map[string]credentialDomain.Credential)}
}

// Get returns a copy of the stored credential, or nil when absent.
func (s *MemoryStore) Get(ctx context.Context, key string) (*credentialDomain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	credential, ok := s.credentials[key]
	if !ok {
		return nil, nil
	}
	return &credential, nil
}

// Set stores the credential under key, replacing any previous one.
func (s *MemoryStore) Set(ctx context.Context, key string, credential *credentialDomain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credentials[key] = *credential
	return nil
}

// Delete removes the credential stored under key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.credentials, key)
	return nil
}

// Ping always succeeds; the store lives in process.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

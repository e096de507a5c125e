// Package usecase implements the cached acquisition of access credentials for the primary content API.
package usecase

import (
	"context"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
)

// CredentialStore persists the current credential for an identity.
// Get returns (nil, nil) when no credential is stored.
type CredentialStore interface {
	Get(ctx context.Context, key string) (*credentialDomain.Credential, error)
	Set(ctx context.Context, key string, credential *credentialDomain.Credential) error
	Delete(ctx context.Context, key string) error
}

// TokenCache returns a valid access credential, exchanging client credentials only when needed.
//
// Concurrent callers that observe a missing or stale credential share a single exchange.
// ErrConfigMissing and ErrUnavailable both mean "no authentication available"; callers
// degrade to anonymous or fallback behaviour instead of failing.
type TokenCache interface {
	// Get returns a fresh credential. It returns ErrConfigMissing without any network call
	// when the client identity is not configured.
	Get(ctx context.Context) (*credentialDomain.Credential, error)

	// Invalidate discards the cached credential if it still carries rejectedToken, so the
	// next Get performs an exchange. A credential refreshed since the rejection is kept.
	// Used after the primary API rejects a token.
	Invalidate(ctx context.Context, rejectedToken string) error

	// HasCredentials reports whether a client identity is configured.
	HasCredentials() bool
}

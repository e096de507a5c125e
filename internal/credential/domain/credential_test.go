package domain

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/quran-gateway/internal/errors"
)

func TestCredential_IsFresh(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		credential *Credential
		expected   bool
	}{
		{name: "nil credential", credential: nil, expected: false},
		{name: "empty token", credential: &Credential{ExpiresAt: now.Add(time.Hour)}, expected: false},
		{name: "before expiry", credential: &Credential{AccessToken: "t", ExpiresAt: now.Add(time.Second)}, expected: true},
		{name: "at expiry", credential: &Credential{AccessToken: "t", ExpiresAt: now}, expected: false},
		{name: "after expiry", credential: &Credential{AccessToken: "t", ExpiresAt: now.Add(-time.Second)}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.credential.IsFresh(now))
		})
	}
}

func TestIdentity(t *testing.T) {
	identity := Identity{ClientID: "client", ClientSecret: "secret", TokenEndpoint: "https://auth.example/token"}

	assert.True(t, identity.IsConfigured())
	assert.False(t, Identity{ClientID: "client"}.IsConfigured())
	assert.False(t, Identity{ClientSecret: "secret"}.IsConfigured())
	assert.Equal(t, "credential:client@https://auth.example/token", identity.Key())

	header := identity.BasicAuth()
	require.True(t, strings.HasPrefix(header, "Basic "))
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	require.NoError(t, err)
	assert.Equal(t, "client:secret", string(decoded))
}

func TestErrors(t *testing.T) {
	assert.True(t, apperrors.Is(ErrConfigMissing, apperrors.ErrUnauthorized))
	assert.True(t, apperrors.Is(ErrUnavailable, apperrors.ErrUnavailable))
}

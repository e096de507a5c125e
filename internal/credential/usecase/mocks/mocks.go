// Package mocks provides mock implementations of the credential use case interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
)

// MockTokenCache is a mock implementation of TokenCache for testing.
type MockTokenCache struct {
	mock.Mock
}

// Get mocks the Get method of TokenCache.
func (m *MockTokenCache) Get(ctx context.Context) (*credentialDomain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// Invalidate mocks the Invalidate method of TokenCache.
func (m *MockTokenCache) Invalidate(ctx context.Context, rejectedToken string) error {
	args := m.Called(ctx, rejectedToken)
	return args.Error(0)
}

// HasCredentials mocks the HasCredentials method of TokenCache.
func (m *MockTokenCache) HasCredentials() bool {
	args := m.Called()
	return args.Bool(0)
}

// MockTokenExchanger is a mock implementation of TokenExchanger for testing.
type MockTokenExchanger struct {
	mock.Mock
}

// Exchange mocks the Exchange method of TokenExchanger.
func (m *MockTokenExchanger) Exchange(
	ctx context.Context,
	identity credentialDomain.Identity,
) (*credentialDomain.TokenResponse, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.TokenResponse), args.Error(1)
}

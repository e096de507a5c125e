package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
	credentialService "github.com/allisson/quran-gateway/internal/credential/service"
)

// defaultTokenLifetime is assumed when the token endpoint omits expires_in.
const defaultTokenLifetime = time.Hour

// tokenCache implements TokenCache on top of a CredentialStore.
type tokenCache struct {
	identity  credentialDomain.Identity
	exchanger credentialService.TokenExchanger
	store     CredentialStore
	skew      time.Duration
	timeout   time.Duration
	logger    *slog.Logger
	now       func() time.Time
	group     singleflight.Group
}

// NewTokenCache creates a TokenCache for identity.
//
// skew is subtracted from every token lifetime so refreshes happen before the upstream
// expiry; timeout bounds each shared exchange independently of any caller's context.
func NewTokenCache(
	identity credentialDomain.Identity,
	exchanger credentialService.TokenExchanger,
	store CredentialStore,
	skew time.Duration,
	timeout time.Duration,
	logger *slog.Logger,
) TokenCache {
	return &tokenCache{
		identity:  identity,
		exchanger: exchanger,
		store:     store,
		skew:      skew,
		timeout:   timeout,
		logger:    logger,
		now:       time.Now,
	}
}

// HasCredentials reports whether both the client id and secret are configured.
func (c *tokenCache) HasCredentials() bool {
	return c.identity.IsConfigured()
}

// Get returns the cached credential while fresh, otherwise joins or starts a refresh.
func (c *tokenCache) Get(ctx context.Context) (*credentialDomain.Credential, error) {
	if !c.identity.IsConfigured() {
		return nil, credentialDomain.ErrConfigMissing
	}

	if credential := c.cached(ctx); credential != nil {
		return credential, nil
	}

	result := c.group.DoChan(c.identity.Key(), func() (any, error) {
		return c.refresh()
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", credentialDomain.ErrUnavailable, ctx.Err())
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*credentialDomain.Credential), nil
	}
}

// Invalidate removes the stored credential when it is the one that was rejected.
func (c *tokenCache) Invalidate(ctx context.Context, rejectedToken string) error {
	if !c.identity.IsConfigured() {
		return nil
	}

	stored, err := c.store.Get(ctx, c.identity.Key())
	if err != nil {
		return fmt.Errorf("invalidate credential: %w", err)
	}
	if stored == nil || stored.AccessToken != rejectedToken {
		c.logger.Debug("rejected token already replaced, keeping stored credential")
		return nil
	}

	if err := c.store.Delete(ctx, c.identity.Key()); err != nil {
		return fmt.Errorf("invalidate credential: %w", err)
	}
	return nil
}

func (c *tokenCache) cached(ctx context.Context) *credentialDomain.Credential {
	credential, err := c.store.Get(ctx, c.identity.Key())
	if err != nil {
		c.logger.Warn("credential store read failed", slog.Any("error", err))
		return nil
	}
	if !credential.IsFresh(c.now()) {
		return nil
	}
	return credential
}

// refresh runs the exchange on a context detached from callers so one caller
// giving up does not fail the others sharing the flight.
func (c *tokenCache) refresh() (*credentialDomain.Credential, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	// Another instance may have refreshed a shared store while this one waited.
	if credential := c.cached(ctx); credential != nil {
		return credential, nil
	}

	token, err := c.exchanger.Exchange(ctx, c.identity)
	if err != nil {
		c.logger.Warn("token exchange failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", credentialDomain.ErrUnavailable, err)
	}

	lifetime := time.Duration(token.ExpiresIn) * time.Second
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	credential := &credentialDomain.Credential{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresAt:   c.now().Add(lifetime - c.skew),
	}

	if err := c.store.Set(ctx, c.identity.Key(), credential); err != nil {
		c.logger.Warn("credential store write failed", slog.Any("error", err))
	}

	c.logger.Debug(
		"access token refreshed",
		slog.Int("token_length", len(credential.AccessToken)),
		slog.Time("expires_at", credential.ExpiresAt),
	)

	return credential, nil
}

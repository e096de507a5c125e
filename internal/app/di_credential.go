package app

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/allisson/quran-gateway/internal/config"
	contentService "github.com/allisson/quran-gateway/internal/content/service"
	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
	credentialRepository "github.com/allisson/quran-gateway/internal/credential/repository"
	credentialService "github.com/allisson/quran-gateway/internal/credential/service"
	credentialUseCase "github.com/allisson/quran-gateway/internal/credential/usecase"
)

// RedisClient returns the Redis client used by the redis credential store.
func (c *Container) RedisClient() redis.UniversalClient {
	c.redisClientInit.Do(func() {
		c.redisClient = c.initRedisClient()
	})
	return c.redisClient
}

// CredentialStore returns the credential store selected by CREDENTIAL_STORE.
func (c *Container) CredentialStore() (credentialUseCase.CredentialStore, error) {
	return c.credentialStoreForReadiness()
}

// TokenExchanger returns the client-credentials token exchanger.
func (c *Container) TokenExchanger() credentialService.TokenExchanger {
	c.tokenExchangerInit.Do(func() {
		c.tokenExchanger = c.initTokenExchanger()
	})
	return c.tokenExchanger
}

// TokenCache returns the process-wide token cache, decorated with metrics.
func (c *Container) TokenCache() (credentialUseCase.TokenCache, error) {
	var err error
	c.tokenCacheInit.Do(func() {
		c.tokenCache, err = c.initTokenCache()
		if err != nil {
			c.initErrors["tokenCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCache"]; exists {
		return nil, storedErr
	}
	return c.tokenCache, nil
}

func (c *Container) credentialStoreForReadiness() (pingableStore, error) {
	var err error
	c.credentialStoreInit.Do(func() {
		c.credentialStore, err = c.initCredentialStore()
		if err != nil {
			c.initErrors["credentialStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialStore"]; exists {
		return nil, storedErr
	}
	return c.credentialStore, nil
}

// initRedisClient creates the Redis client from configuration.
func (c *Container) initRedisClient() redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:     c.config.RedisAddr,
		Password: c.config.RedisPassword,
		DB:       c.config.RedisDB,
	})
}

// initCredentialStore creates the credential store based on the configured driver.
func (c *Container) initCredentialStore() (pingableStore, error) {
	switch c.config.CredentialStore {
	case config.CredentialStoreMemory, "":
		return credentialRepository.NewMemoryStore(), nil
	case config.CredentialStoreRedis:
		return credentialRepository.NewRedisStore(c.RedisClient()), nil
	default:
		return nil, fmt.Errorf("unsupported credential store: %s", c.config.CredentialStore)
	}
}

// initTokenExchanger creates the HTTP token exchanger with the upstream timeout.
func (c *Container) initTokenExchanger() credentialService.TokenExchanger {
	return credentialService.NewHTTPTokenExchanger(contentService.NewHTTPClient(c.config.UpstreamTimeout))
}

// initTokenCache creates the token cache with all its dependencies.
func (c *Container) initTokenCache() (credentialUseCase.TokenCache, error) {
	store, err := c.CredentialStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get credential store for token cache: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for token cache: %w", err)
	}

	identity := credentialDomain.Identity{
		ClientID:      c.config.QuranClientID,
		ClientSecret:  c.config.QuranClientSecret,
		TokenEndpoint: c.config.QuranTokenEndpoint,
		Scope:         c.config.QuranTokenScope,
	}

	cache := credentialUseCase.NewTokenCache(
		identity,
		c.TokenExchanger(),
		store,
		c.config.TokenRefreshSkew,
		c.config.UpstreamTimeout,
		c.Logger(),
	)

	return credentialUseCase.NewTokenCacheWithMetrics(cache, businessMetrics), nil
}

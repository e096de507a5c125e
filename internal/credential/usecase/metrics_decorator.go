package usecase

import (
	"context"
	"time"

	credentialDomain "github.com/allisson/quran-gateway/internal/credential/domain"
	"github.com/allisson/quran-gateway/internal/metrics"
)

// tokenCacheWithMetrics decorates TokenCache with metrics instrumentation.
type tokenCacheWithMetrics struct {
	next    TokenCache
	metrics metrics.BusinessMetrics
}

// NewTokenCacheWithMetrics wraps a TokenCache with metrics recording.
func NewTokenCacheWithMetrics(cache TokenCache, m metrics.BusinessMetrics) TokenCache {
	return &tokenCacheWithMetrics{
		next:    cache,
		metrics: m,
	}
}

// Get records metrics for credential retrieval.
func (t *tokenCacheWithMetrics) Get(ctx context.Context) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := t.next.Get(ctx)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	t.metrics.RecordOperation(ctx, "credential", "token_get", status)
	t.metrics.RecordDuration(ctx, "credential", "token_get", time.Since(start), status)

	return credential, err
}

// Invalidate records metrics for credential invalidation.
func (t *tokenCacheWithMetrics) Invalidate(ctx context.Context, rejectedToken string) error {
	start := time.Now()
	err := t.next.Invalidate(ctx, rejectedToken)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	t.metrics.RecordOperation(ctx, "credential", "token_invalidate", status)
	t.metrics.RecordDuration(ctx, "credential", "token_invalidate", time.Since(start), status)

	return err
}

// HasCredentials is not instrumented.
func (t *tokenCacheWithMetrics) HasCredentials() bool {
	return t.next.HasCredentials()
}

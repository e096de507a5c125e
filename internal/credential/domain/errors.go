package domain

import (
	"github.com/allisson/quran-gateway/internal/errors"
)

// Credential acquisition errors. Both mean "no authentication available";
// callers degrade to unauthenticated behaviour instead of failing.
var (
	// ErrConfigMissing indicates the client id or secret is not configured.
	ErrConfigMissing = errors.Wrap(errors.ErrUnauthorized, "client credentials not configured")

	// ErrUnavailable indicates the token exchange failed.
	ErrUnavailable = errors.Wrap(errors.ErrUnavailable, "access token unavailable")
)

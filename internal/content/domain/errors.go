package domain

import (
	"fmt"

	"github.com/allisson/quran-gateway/internal/errors"
)

// Resolution errors. Tier failures are converted into the next attempt or a
// failed Resolved value; they never reach callers as Go errors.
var (
	// ErrAuthRejected indicates the primary source rejected the credential (401/403).
	ErrAuthRejected = errors.Wrap(errors.ErrUnauthorized, "primary source rejected credentials")

	// ErrUpstreamUnavailable indicates a network error, timeout or unexpected status.
	ErrUpstreamUnavailable = errors.Wrap(errors.ErrUnavailable, "upstream unavailable")

	// ErrNoDataFound indicates an upstream answered with empty or unrecognized content.
	ErrNoDataFound = errors.Wrap(errors.ErrNotFound, "no data found")

	// ErrAllTiersExhausted is the terminal error when every tier failed.
	ErrAllTiersExhausted = errors.Wrap(errors.ErrUnavailable, "all sources exhausted")

	// ErrInvalidChapter indicates a chapter number outside 1..114.
	ErrInvalidChapter = errors.Wrap(errors.ErrInvalidInput, "chapter must be between 1 and 114")

	// ErrSetupRequired marks a terminal failure caused by missing or rejected credentials.
	ErrSetupRequired = errors.Wrap(errors.ErrUnauthorized, "primary source credentials missing or rejected")

	// ErrInvalidAudioURL indicates a relay target that is not an absolute http(s) URL.
	ErrInvalidAudioURL = errors.Wrap(errors.ErrInvalidInput, "audio url must be an absolute http(s) url")

	// ErrAudioHostNotAllowed indicates a relay target or redirect outside the allowed audio hosts.
	ErrAudioHostNotAllowed = errors.Wrap(errors.ErrInvalidInput, "audio host is not allowed")
)

// UpstreamError records a non-2xx upstream status. It unwraps to ErrAuthRejected
// for 401/403 and to ErrUpstreamUnavailable otherwise.
type UpstreamError struct {
	Status int
	URL    string
}

// NewUpstreamError builds an UpstreamError for status.
func NewUpstreamError(status int, url string) *UpstreamError {
	return &UpstreamError{Status: status, URL: url}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s returned status %d", e.URL, e.Status)
}

func (e *UpstreamError) Unwrap() error {
	if e.Status == 401 || e.Status == 403 {
		return ErrAuthRejected
	}
	return ErrUpstreamUnavailable
}

package domain

import "time"

// Source tags which resolution tier produced a response.
type Source string

const (
	// SourcePrimary is the authenticated content API.
	SourcePrimary Source = "primary"
	// SourceFallback is a public network source.
	SourceFallback Source = "fallback"
	// SourceFallbackGenerated is a deterministically generated URL that was not fetched.
	SourceFallbackGenerated Source = "fallback-generated"
)

// Resolved is the tagged result of one logical content operation.
//
// A successful response carries exactly one Source. A failed response carries Error and
// hints telling whether credentials need fixing (SetupRequired) or upstreams are down
// (FallbackNeeded).
type Resolved[T any] struct {
	Success        bool   `json:"success"`
	Source         Source `json:"source,omitempty"`
	Data           T      `json:"data,omitempty"`
	Error          string `json:"error,omitempty"`
	SetupRequired  bool   `json:"setup_required,omitempty"`
	FallbackNeeded bool   `json:"fallback_needed,omitempty"`

	// Err is the terminal error behind Error, kept for status classification.
	Err error `json:"-"`
}

// Succeeded builds a successful response tagged with source.
func Succeeded[T any](source Source, data T) Resolved[T] {
	return Resolved[T]{Success: true, Source: source, Data: data}
}

// Failed builds a terminal failure response.
func Failed[T any](err error, setupRequired, fallbackNeeded bool) Resolved[T] {
	return Resolved[T]{
		Success:        false,
		Error:          err.Error(),
		SetupRequired:  setupRequired,
		FallbackNeeded: fallbackNeeded,
		Err:            err,
	}
}

// Status reports whether the primary source can currently be authenticated against.
type Status struct {
	Authenticated  bool      `json:"authenticated"`
	Source         Source    `json:"source"`
	HasCredentials bool      `json:"has_credentials"`
	Message        string    `json:"message"`
	CheckedAt      time.Time `json:"timestamp"`
}

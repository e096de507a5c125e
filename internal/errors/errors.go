// Package errors holds the error categories shared by every layer of the gateway.
//
// Domain packages wrap one of the sentinels below; the HTTP layer classifies an error by
// sentinel and never inspects messages.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no source holds the requested item.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means caller-supplied parameters were rejected before any upstream call.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means the primary source cannot be authenticated against:
	// credentials are missing or were rejected.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable means an upstream could not serve the request.
	ErrUnavailable = errors.New("unavailable")
)

// categories lists the sentinels in classification priority.
var categories = []error{ErrInvalidInput, ErrUnauthorized, ErrNotFound, ErrUnavailable}

// Wrap prefixes err with message, keeping it matchable with Is. Returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Classify returns the category sentinel err belongs to, or nil when it belongs to none.
// An error wrapping several sentinels is classified by the first in priority order.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, category := range categories {
		if errors.Is(err, category) {
			return category
		}
	}
	return nil
}

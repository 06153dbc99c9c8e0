package client

import (
	"errors"
)

// Common errors returned by the client.
var (
	// ErrPrivate is returned when the referenced player profile is
	// private. A zero player ID marks a private profile; any operation
	// on it fails with this error before a request is made.
	ErrPrivate = errors.New("player profile is private")

	// ErrNotFound is returned by single-entity lookups when the service
	// found nothing. List operations return an empty slice instead.
	ErrNotFound = errors.New("not found")
)

package domain

import "errors"

var (
	// ErrCatalogNotFound means the catalog document is missing on disk
	ErrCatalogNotFound = errors.New("catalog document not found")
	// ErrDeliveryFailed means the transport rejected an outbound message
	ErrDeliveryFailed = errors.New("delivery failed")
	// ErrOracleUnavailable means channel membership could not be determined
	ErrOracleUnavailable = errors.New("subscription check unavailable")
	// ErrNotificationSkipped means no administrator is configured
	ErrNotificationSkipped = errors.New("administrator not configured")
	// ErrSessionNotFound means the store has no entry for the user
	ErrSessionNotFound = errors.New("session not found")
)

package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRating is returned when a rating is outside Again..Easy (1-4).
	ErrInvalidRating = errors.New("invalid rating")

	// ErrInvalidState is returned when a state code is outside New..Relearning (0-3).
	ErrInvalidState = errors.New("invalid card state")

	// ErrInvalidTimestamp is returned when a timestamp is not ISO-8601 parseable.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrInvalidCard is returned when a card record breaks the card invariants.
	ErrInvalidCard = errors.New("invalid card")
)

package srs

import "errors"

// Common errors
var (
	ErrInvalidParams    = errors.New("invalid scheduler parameters")
	ErrInvalidDays      = errors.New("postpone days must be at least 1")
	ErrCardNotScheduled = errors.New("card has no scheduled review")
)

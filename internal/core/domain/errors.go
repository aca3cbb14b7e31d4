package domain

import "errors"

// Error classes surfaced by the engine. Callers classify with errors.Is;
// anything outside this set means no mutation was applied.
var (
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidState        = errors.New("invalid state")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRoomUnavailable     = errors.New("room unavailable")
)

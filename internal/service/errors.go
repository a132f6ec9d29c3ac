package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for
// consistency and to make error handling in callers predictable.
// Raw storage errors never cross this boundary.

// ===== Lookup Errors =====
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrGuestNotFound    = errors.New("guest not found")
	ErrDishNotFound     = errors.New("dish not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrTemplateNotFound = errors.New("template not found")
)

// ===== Join Errors =====
var (
	ErrEventFull     = errors.New("event is full")
	ErrAlreadyJoined = errors.New("already joined with this email")
)

// ===== Validation Errors =====
var (
	ErrTitleRequired   = errors.New("event title is required")
	ErrTitleTooLong    = errors.New("event title exceeds maximum length")
	ErrNameRequired    = errors.New("guest name is required")
	ErrEmailRequired   = errors.New("guest email is required")
	ErrInvalidRSVP     = errors.New("invalid RSVP state")
	ErrInvalidCategory = errors.New("invalid category")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrDishNotInEvent  = errors.New("dish does not belong to this event")
	ErrItemNotInEvent  = errors.New("item does not belong to this event")
)

// ===== Persistence Errors =====
var (
	// ErrStorageFailed indicates both persistence tiers rejected the
	// operation; there was no cache equivalent left to fall back to.
	ErrStorageFailed = errors.New("storage operation failed")
)

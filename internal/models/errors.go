package models

import "errors"

// Sentinel errors surfaced by the ledger and its collaborators. Services wrap
// these with context via fmt.Errorf("...: %w", ...); handlers map them to
// HTTP statuses with errors.Is.

var (
	// Store errors
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUserNotFound     = errors.New("user not found")

	// Ledger errors
	ErrInsufficientBalance = errors.New("insufficient token balance")
	ErrUnknownRewardAction = errors.New("unknown reward action")
	ErrInvalidAmount       = errors.New("amount must be a positive integer")
	ErrEmptyDescription    = errors.New("description must not be empty")

	// Mission errors
	ErrMissionNotFound       = errors.New("mission not found")
	ErrMissionNotCompletable = errors.New("mission is not active or target not reached")
	ErrEmptyTitle            = errors.New("title must not be empty")

	// Check-in errors
	ErrAlreadyCheckedIn = errors.New("already checked in today")
)

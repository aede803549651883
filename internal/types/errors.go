package types

import "errors"

// Domain error taxonomy. Every engine operation fails with exactly one
// of these (possibly wrapped with context); callers match with
// errors.Is.
var (
	ErrDuplicatePool   = errors.New("stake pool already exists")
	ErrInvalidWindow   = errors.New("pool start time must be before end time")
	ErrInvalidBounds   = errors.New("invalid stake bounds")
	ErrUnauthorized    = errors.New("caller is not authorized")
	ErrPoolNotFound    = errors.New("stake pool not found")
	ErrOutOfBounds     = errors.New("stake amount outside pool bounds")
	ErrWindowClosed    = errors.New("pool staking window is closed")
	ErrNoStakes        = errors.New("user has no stakes in pool")
	ErrNothingToClaim  = errors.New("no reward accrued to claim")
	ErrTokenMoveFailed = errors.New("token movement failed")
)

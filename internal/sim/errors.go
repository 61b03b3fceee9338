package sim

import "errors"

// Refusal reasons. A returned error always means the world was left unchanged,
// except where a function documents an explicit partial application.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCapacityExceeded  = errors.New("capacity exceeded")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrAlreadyInProgress = errors.New("already in progress")
	ErrMapLoad           = errors.New("map load failed")
	ErrGameOver          = errors.New("match is over")
	ErrNotStarted        = errors.New("match not started")
)

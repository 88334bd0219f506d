// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
)

// Errors that abort an invocation. No write of an aborted invocation persists.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnauthorized       = errors.New("unauthorized: results are sealed until the poll is completed")
	ErrNotInitialized     = errors.New("poll is not initialized")
	ErrAlreadyInitialized = errors.New("poll is already initialized")
	ErrDelegationCycle    = errors.New("delegation cycle")
	ErrDelegationTooDeep  = errors.New("delegation chain too long")

	// ErrStorage marks ledger and codec failures, including records the
	// rest of the state says must exist but do not.
	ErrStorage = errors.New("ledger storage failure")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

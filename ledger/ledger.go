// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import "errors"

var (
	ErrNotFound = errors.New("ledger: key not found")
	ErrClosed   = errors.New("ledger: store is closed")
)

// Store is the keyed byte-blob contract the poll state is built on.
// Get returns ErrNotFound when the key has never been set.
type Store interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
}

// Write is one buffered key/value assignment.
type Write struct {
	Key   []byte
	Value []byte
}

// Backend is a durable Store that can apply a group of writes atomically.
type Backend interface {
	Store
	WriteBatch(writes []Write) error
	Close() error
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

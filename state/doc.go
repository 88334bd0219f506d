// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package state stores ballots and the tally on a ledger.Store, encoded as JSON.
package state

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger provides the keyed byte-blob storage the poll state lives in.

# Contract

Store is the whole surface the poll logic depends on:

	Get(key) → value | ErrNotFound
	Set(key, value)

Backend adds an atomic WriteBatch and Close.

# Backends

  - MemoryStore: map-backed, for tests and throwaway polls
  - LevelDBStore: github.com/syndtr/goleveldb directory
  - SQLStore: ledger_kv table on sqlite or postgres (see package db)

Open picks one by name:

	backend, err := ledger.Open(ledger.TypeLevelDB, "./data")

# Invocations

Txn overlays one invocation's writes on a Backend:

	txn := ledger.Begin(backend)
	// ... Get/Set through txn ...
	if err != nil {
		txn.Discard()
		return err
	}
	return txn.Commit()

Commit lands every write in one batch, so a failed invocation never leaves
half of its writes behind.
*/
package ledger

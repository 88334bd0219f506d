// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally counts a single yes/no poll with liquid delegation.

# Operations

	engine := tally.NewEngine(backend, tally.DefaultMaxHops)

	engine.Init(poll, duration, earlyResults, now)
	engine.Submit(caller, models.VoteChoice{Yes: true}, now)
	engine.Submit(caller, models.DelegateChoice{To: "bob"}, now)
	engine.Close(now)
	engine.Poll()
	engine.Window()
	engine.Tally()

Each operation loads what it needs from the ledger, works on its own copy
of the tally and writes everything back in one batch when it returns. The
engine does no locking; the host runs one operation at a time.

# Weight

Every address owns one unit of weight. Delegating moves the caller's weight
(its own unit plus whatever was delegated to it before it acted) down the
chain of delegates until it reaches an address that either voted directly,
and is credited to the tally at once, or has not acted yet, and is parked
on that address's pending ballot until it does.

A ballot is final once its owner votes or delegates. Final ballots never
change and never count twice.

# Window

Submissions after the end timestamp are rejected with a Closed outcome.
The first such submission, or Close, marks the poll completed.

# Errors

InvalidRequest, Unauthorized, NotInitialized, AlreadyInitialized,
DelegationCycle and DelegationTooDeep abort the operation. ErrStorage wraps
every ledger or decode failure. Closed and AlreadyFinalized are not errors:
they come back as an Outcome with StatusFailure.
*/
package tally

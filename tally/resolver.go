// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"log/slog"

	"github.com/danielhkuo/liquid-poll/models"
	"github.com/danielhkuo/liquid-poll/state"
)

// route moves weight from `from` down the delegation chain that starts at
// target. The whole weight goes one hop at a time until it reaches an
// address with no onward delegate, the holder:
//
//   - holder finalized a direct vote: weight is credited to the tally now
//   - holder has a pending ballot: weight is added to its vote value
//   - holder has no ballot: a pending one is created with 1 + weight,
//     the 1 being the holder's own future vote
//
// Reaching an address twice (from included) fails with ErrDelegationCycle.
func (e *Engine) route(inv *invocation, t *models.Tally, from models.Address, weight uint64, target models.Address, now uint64) error {
	visited := map[models.Address]struct{}{from: {}}
	holder := target

	for hops := 1; ; hops++ {
		if _, seen := visited[holder]; seen {
			return fmt.Errorf("%w: %s leads back to %s", ErrDelegationCycle, from, holder)
		}
		if hops > e.maxHops {
			return fmt.Errorf("%w: more than %d hops from %s", ErrDelegationTooDeep, e.maxHops, from)
		}
		visited[holder] = struct{}{}

		ballot, found, err := inv.ballotFor(t, holder)
		if err != nil {
			return err
		}
		if found && ballot.Delegate != nil {
			holder = *ballot.Delegate
			continue
		}

		if err := settle(inv, t, holder, ballot, found, weight, now); err != nil {
			return err
		}
		slog.Info("weight routed", "from", from, "holder", holder, "weight", weight, "hops", hops)
		return nil
	}
}

// settle hands weight to the end of a delegation chain.
func settle(inv *invocation, t *models.Tally, holder models.Address, ballot models.Ballot, found bool, weight, now uint64) error {
	switch {
	case found && ballot.HasVoted:
		if ballot.Vote == nil {
			return storageErr("load ballot", fmt.Errorf("%w: finalized ballot for %s has neither vote nor delegate", state.ErrCorruptRecord, holder))
		}
		t.Credit(*ballot.Vote, weight)
		return nil
	case found:
		ballot.VoteValue += weight
		ballot.Timestamp = now
	default:
		ballot = models.Ballot{Timestamp: now, VoteValue: 1 + weight}
		t.AddVoter(holder)
	}
	if err := inv.ballots.Put(holder, ballot); err != nil {
		return storageErr("save ballot", err)
	}
	return nil
}

// ballotFor loads addr's ballot. Every voter listed in t must have one.
func (inv *invocation) ballotFor(t *models.Tally, addr models.Address) (models.Ballot, bool, error) {
	if t.HasVoter(addr) {
		b, err := inv.ballots.MustGet(addr)
		if err != nil {
			return models.Ballot{}, false, storageErr("load ballot", err)
		}
		return b, true, nil
	}
	b, found, err := inv.ballots.Get(addr)
	if err != nil {
		return models.Ballot{}, false, storageErr("load ballot", err)
	}
	return b, found, nil
}

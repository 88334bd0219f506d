// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"log/slog"
	"math"

	"github.com/danielhkuo/liquid-poll/ledger"
	"github.com/danielhkuo/liquid-poll/models"
	"github.com/danielhkuo/liquid-poll/state"
)

// DefaultMaxHops bounds how many addresses one delegation may traverse.
const DefaultMaxHops = 1024

// Response messages
const (
	msgCast        = "Ballot was cast successfully!"
	msgAlreadyCast = "Ballot was already cast!"
	msgOver        = "Tally is over. "
	msgRecorded    = "Previous ballot was however recorded."
	msgNotCounted  = "Ballot was not taken into account."
)

// Engine runs the poll's operations against a ledger backend.
// Callers must not run two operations at the same time.
type Engine struct {
	backend ledger.Backend
	maxHops int
}

func NewEngine(backend ledger.Backend, maxHops int) *Engine {
	if maxHops <= 0 {
		maxHops = DefaultMaxHops
	}
	return &Engine{backend: backend, maxHops: maxHops}
}

// invocation is the read/mutate/write scope of a single operation.
type invocation struct {
	txn     *ledger.Txn
	ballots state.BallotStore
	tallies state.TallyStore
}

func (e *Engine) begin() *invocation {
	txn := ledger.Begin(e.backend)
	return &invocation{
		txn:     txn,
		ballots: state.NewBallotStore(txn),
		tallies: state.NewTallyStore(txn),
	}
}

// finish commits the invocation's writes, or drops them if err is set.
func (inv *invocation) finish(err error) error {
	if err != nil {
		inv.txn.Discard()
		return err
	}
	if cerr := inv.txn.Commit(); cerr != nil {
		return storageErr("commit", cerr)
	}
	return nil
}

func (inv *invocation) loadTally() (models.Tally, error) {
	t, err := inv.tallies.Load()
	if errors.Is(err, state.ErrMissingRecord) {
		return models.Tally{}, ErrNotInitialized
	}
	if err != nil {
		return models.Tally{}, storageErr("load tally", err)
	}
	return t, nil
}

// Initialized reports whether Init has run on this ledger.
func (e *Engine) Initialized() (bool, error) {
	ok, err := state.NewTallyStore(e.backend).Exists()
	if err != nil {
		return false, storageErr("check tally", err)
	}
	return ok, nil
}

// Init creates the tally for a poll open from now for duration time units.
func (e *Engine) Init(poll string, duration uint64, earlyResultsAllowed bool, now uint64) error {
	if duration > math.MaxUint64-now {
		return invalid("duration %d overflows the voting window", duration)
	}

	inv := e.begin()
	err := func() error {
		exists, err := inv.tallies.Exists()
		if err != nil {
			return storageErr("check tally", err)
		}
		if exists {
			return ErrAlreadyInitialized
		}
		if err := inv.tallies.SavePoll(poll); err != nil {
			return storageErr("save poll", err)
		}
		if err := inv.tallies.Save(models.NewTally(now, now+duration, earlyResultsAllowed)); err != nil {
			return storageErr("save tally", err)
		}
		return nil
	}()
	if err := inv.finish(err); err != nil {
		return err
	}

	slog.Info("poll initialized",
		"init_timestamp", now,
		"end_timestamp", now+duration,
		"early_results_allowed", earlyResultsAllowed,
	)
	return nil
}

// Submit casts or delegates the caller's vote at time now.
//
// Business-rule rejections (window over, ballot already final) come back as
// an Outcome with StatusFailure. Errors abort the call and discard its writes.
func (e *Engine) Submit(caller models.Address, choice models.Choice, now uint64) (models.Outcome, error) {
	if err := validateSubmission(caller, choice); err != nil {
		return models.Outcome{}, err
	}

	inv := e.begin()
	out, err := e.submit(inv, caller, choice, now)
	if err := inv.finish(err); err != nil {
		slog.Warn("submission aborted", "caller", caller, "error", err)
		return models.Outcome{}, err
	}
	return out, nil
}

func validateSubmission(caller models.Address, choice models.Choice) error {
	if err := validateAddress(caller); err != nil {
		return err
	}
	switch c := choice.(type) {
	case models.VoteChoice:
		return nil
	case models.DelegateChoice:
		return validateAddress(c.To)
	default:
		return invalid("exactly one of vote or delegate is required")
	}
}

func validateAddress(addr models.Address) error {
	if addr == "" {
		return invalid("empty address")
	}
	if state.IsReserved(addr) {
		return invalid("address %q is reserved", addr)
	}
	return nil
}

func (e *Engine) submit(inv *invocation, caller models.Address, choice models.Choice, now uint64) (models.Outcome, error) {
	t, err := inv.loadTally()
	if err != nil {
		return models.Outcome{}, err
	}

	if t.Expired(now) {
		return e.rejectClosed(inv, &t, caller)
	}

	ballot, found, err := inv.ballotFor(&t, caller)
	if err != nil {
		return models.Outcome{}, err
	}

	if found && ballot.HasVoted {
		slog.Warn("submission rejected", "caller", caller, "reason", "already_finalized")
		return models.Outcome{
			Kind:     models.OutcomeAlreadyFinalized,
			Status:   models.StatusFailure,
			Message:  msgAlreadyCast,
			Vote:     ballot.Vote,
			Delegate: ballot.Delegate,
		}, nil
	}

	// A pending ballot already carries the caller's own unit of weight
	// plus everything delegated to it.
	weight := uint64(1)
	if found {
		weight = ballot.VoteValue
	} else {
		ballot.VoteValue = 1
	}

	switch c := choice.(type) {
	case models.VoteChoice:
		t.Credit(c.Yes, weight)
		slog.Info("ballot cast", "caller", caller, "yes", c.Yes, "weight", weight)
	case models.DelegateChoice:
		if err := e.route(inv, &t, caller, weight, c.To, now); err != nil {
			return models.Outcome{}, err
		}
		slog.Info("ballot delegated", "caller", caller, "delegate", c.To, "weight", weight)
	}

	vote, delegate := models.Fields(choice)
	ballot.HasVoted = true
	ballot.Timestamp = now
	ballot.Vote = vote
	ballot.Delegate = delegate
	t.AddVoter(caller)

	if err := inv.ballots.Put(caller, ballot); err != nil {
		return models.Outcome{}, storageErr("save ballot", err)
	}
	if err := inv.tallies.Save(t); err != nil {
		return models.Outcome{}, storageErr("save tally", err)
	}

	return models.Outcome{
		Kind:     models.OutcomeAccepted,
		Status:   models.StatusSuccess,
		Message:  msgCast,
		Vote:     vote,
		Delegate: delegate,
	}, nil
}

// rejectClosed answers a submission made after the window ended. The first
// such call also records that the poll is completed.
func (e *Engine) rejectClosed(inv *invocation, t *models.Tally, caller models.Address) (models.Outcome, error) {
	if err := markCompleted(inv, t); err != nil {
		return models.Outcome{}, err
	}

	out := models.Outcome{
		Kind:    models.OutcomeClosed,
		Status:  models.StatusFailure,
		Message: msgOver + msgNotCounted,
	}

	ballot, found, err := inv.ballots.Get(caller)
	if err != nil {
		return models.Outcome{}, storageErr("load ballot", err)
	}
	if found && ballot.HasVoted {
		out.Message = msgOver + msgRecorded
		out.Vote = ballot.Vote
		out.Delegate = ballot.Delegate
	}

	slog.Warn("submission rejected", "caller", caller, "reason", "closed")
	return out, nil
}

func markCompleted(inv *invocation, t *models.Tally) error {
	if t.IsCompleted {
		return nil
	}
	t.IsCompleted = true
	if err := inv.tallies.Save(*t); err != nil {
		return storageErr("save tally", err)
	}
	slog.Info("poll closed", "end_timestamp", t.EndTimestamp, "voters", len(t.Voters))
	return nil
}

// Close completes the poll without a submission once now is past the end
// of the window. It reports whether the poll is completed.
func (e *Engine) Close(now uint64) (bool, error) {
	inv := e.begin()
	var completed bool
	err := func() error {
		t, err := inv.loadTally()
		if err != nil {
			return err
		}
		if !t.Expired(now) {
			return nil
		}
		completed = true
		return markCompleted(inv, &t)
	}()
	if err := inv.finish(err); err != nil {
		return false, err
	}
	return completed, nil
}

// Poll returns the poll text.
func (e *Engine) Poll() (string, error) {
	inv := e.begin()
	if _, err := inv.loadTally(); err != nil {
		return "", err
	}
	text, err := inv.tallies.Poll()
	if err != nil {
		return "", storageErr("load poll", err)
	}
	return text, nil
}

// Window returns the voting window and flags; it is never sealed.
func (e *Engine) Window() (models.Window, error) {
	t, err := e.begin().loadTally()
	if err != nil {
		return models.Window{}, err
	}
	return t.Window(), nil
}

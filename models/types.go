// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"sort"
	"time"
)

// Response status constants
const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Outcome kinds
const (
	OutcomeAccepted         OutcomeKind = "accepted"
	OutcomeClosed           OutcomeKind = "closed"
	OutcomeAlreadyFinalized OutcomeKind = "already_finalized"
)

type Status string

type OutcomeKind string

// Address identifies a voter. Two addresses are the same voter iff they are equal.
type Address string

// Domain types

// Tally is the single aggregate for the poll.
type Tally struct {
	Yes                 uint64
	No                  uint64
	Voters              map[Address]struct{}
	InitTimestamp       uint64
	EndTimestamp        uint64
	EarlyResultsAllowed bool
	IsCompleted         bool
}

func NewTally(initTimestamp, endTimestamp uint64, earlyResultsAllowed bool) Tally {
	return Tally{
		Voters:              make(map[Address]struct{}),
		InitTimestamp:       initTimestamp,
		EndTimestamp:        endTimestamp,
		EarlyResultsAllowed: earlyResultsAllowed,
	}
}

func (t *Tally) HasVoter(addr Address) bool {
	_, ok := t.Voters[addr]
	return ok
}

// AddVoter inserts addr; the voter set never shrinks.
func (t *Tally) AddVoter(addr Address) {
	if t.Voters == nil {
		t.Voters = make(map[Address]struct{})
	}
	t.Voters[addr] = struct{}{}
}

// Credit adds weight to the yes or no count.
func (t *Tally) Credit(yes bool, weight uint64) {
	if yes {
		t.Yes += weight
	} else {
		t.No += weight
	}
}

// VoterList returns the voter set sorted.
func (t Tally) VoterList() []Address {
	out := make([]Address, 0, len(t.Voters))
	for addr := range t.Voters {
		out = append(out, addr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Expired reports whether now is past the end of the voting window.
func (t Tally) Expired(now uint64) bool {
	return now > t.EndTimestamp
}

func (t Tally) Window() Window {
	return Window{
		InitTimestamp:       t.InitTimestamp,
		EndTimestamp:        t.EndTimestamp,
		EarlyResultsAllowed: t.EarlyResultsAllowed,
		IsCompleted:         t.IsCompleted,
	}
}

// Window is the tally metadata that is never sealed.
type Window struct {
	InitTimestamp       uint64
	EndTimestamp        uint64
	EarlyResultsAllowed bool
	IsCompleted         bool
}

// Ballot is the per-address voting record.
// Once HasVoted is set nothing in it changes again.
type Ballot struct {
	HasVoted  bool
	Timestamp uint64
	Vote      *bool
	Delegate  *Address
	VoteValue uint64
}

// Outcome is the result of a submission that did not abort.
// Vote and Delegate describe what is recorded for the caller, if anything.
type Outcome struct {
	Kind     OutcomeKind
	Status   Status
	Message  string
	Vote     *bool
	Delegate *Address
}

// Request types

// Exactly one of Vote and Delegate must be set.
type SubmitBallotRequest struct {
	Vote     *bool   `json:"vote,omitempty"`
	Delegate *string `json:"delegate,omitempty"`
}

// Response types

type SubmitBallotResponse struct {
	Status   Status      `json:"status"`
	Outcome  OutcomeKind `json:"outcome"`
	Message  string      `json:"message"`
	Vote     *bool       `json:"vote"`
	Delegate *string     `json:"delegate"`
}

type PollResponse struct {
	Poll string `json:"poll"`
}

type WindowResponse struct {
	InitTimestamp       uint64    `json:"init_timestamp"`
	EndTimestamp        uint64    `json:"end_timestamp"`
	EarlyResultsAllowed bool      `json:"early_results_allowed"`
	IsCompleted         bool      `json:"is_completed"`
	EndsAt              time.Time `json:"ends_at"`
	Ends                string    `json:"ends"` // e.g. "3 days from now"
}

type ClosePollResponse struct {
	Closed  bool   `json:"closed"`
	Message string `json:"message"`
}

type TallyResponse struct {
	Yes                 uint64   `json:"yes"`
	No                  uint64   `json:"no"`
	Voters              []string `json:"voters"`
	InitTimestamp       uint64   `json:"init_timestamp"`
	EndTimestamp        uint64   `json:"end_timestamp"`
	EarlyResultsAllowed bool     `json:"early_results_allowed"`
	IsCompleted         bool     `json:"is_completed"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

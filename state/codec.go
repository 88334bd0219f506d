// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"encoding/json"
	"fmt"

	"github.com/danielhkuo/liquid-poll/models"
)

// Persisted shapes. The voter set is written sorted so encoding is
// deterministic.

type tallyRecord struct {
	Yes                 uint64           `json:"yes"`
	No                  uint64           `json:"no"`
	Voters              []models.Address `json:"voters"`
	InitTimestamp       uint64           `json:"init_timestamp"`
	EndTimestamp        uint64           `json:"end_timestamp"`
	EarlyResultsAllowed bool             `json:"early_results_allowed"`
	IsCompleted         bool             `json:"is_completed"`
}

type ballotRecord struct {
	HasVoted  bool            `json:"has_voted"`
	Timestamp uint64          `json:"timestamp"`
	Vote      *bool           `json:"vote,omitempty"`
	Delegate  *models.Address `json:"delegate,omitempty"`
	VoteValue uint64          `json:"vote_value"`
}

func EncodeTally(t models.Tally) ([]byte, error) {
	rec := tallyRecord{
		Yes:                 t.Yes,
		No:                  t.No,
		Voters:              t.VoterList(),
		InitTimestamp:       t.InitTimestamp,
		EndTimestamp:        t.EndTimestamp,
		EarlyResultsAllowed: t.EarlyResultsAllowed,
		IsCompleted:         t.IsCompleted,
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tally: %w", err)
	}
	return b, nil
}

func DecodeTally(data []byte) (models.Tally, error) {
	var rec tallyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Tally{}, fmt.Errorf("%w: tally: %v", ErrCorruptRecord, err)
	}
	t := models.NewTally(rec.InitTimestamp, rec.EndTimestamp, rec.EarlyResultsAllowed)
	t.Yes = rec.Yes
	t.No = rec.No
	t.IsCompleted = rec.IsCompleted
	for _, addr := range rec.Voters {
		t.AddVoter(addr)
	}
	return t, nil
}

func EncodeBallot(b models.Ballot) ([]byte, error) {
	out, err := json.Marshal(ballotRecord{
		HasVoted:  b.HasVoted,
		Timestamp: b.Timestamp,
		Vote:      b.Vote,
		Delegate:  b.Delegate,
		VoteValue: b.VoteValue,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode ballot: %w", err)
	}
	return out, nil
}

func DecodeBallot(data []byte) (models.Ballot, error) {
	var rec ballotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Ballot{}, fmt.Errorf("%w: ballot: %v", ErrCorruptRecord, err)
	}
	return models.Ballot{
		HasVoted:  rec.HasVoted,
		Timestamp: rec.Timestamp,
		Vote:      rec.Vote,
		Delegate:  rec.Delegate,
		VoteValue: rec.VoteValue,
	}, nil
}

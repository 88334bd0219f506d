// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package state

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/liquid-poll/ledger"
	"github.com/danielhkuo/liquid-poll/models"
)

var (
	ErrMissingRecord = errors.New("expected record not found")
	ErrCorruptRecord = errors.New("record could not be decoded")
)

// Fixed ledger keys. Ballots are keyed by the raw voter address.
var (
	PollKey  = []byte("poll")
	TallyKey = []byte("tally")
)

// IsReserved reports whether addr would collide with a fixed key.
func IsReserved(addr models.Address) bool {
	return string(addr) == string(PollKey) || string(addr) == string(TallyKey)
}

// BallotStore maps voter addresses to their Ballot records.
type BallotStore struct {
	kv ledger.Store
}

func NewBallotStore(kv ledger.Store) BallotStore {
	return BallotStore{kv: kv}
}

// Get returns the ballot for addr and whether one exists.
func (s BallotStore) Get(addr models.Address) (models.Ballot, bool, error) {
	data, err := s.kv.Get([]byte(addr))
	if errors.Is(err, ledger.ErrNotFound) {
		return models.Ballot{}, false, nil
	}
	if err != nil {
		return models.Ballot{}, false, fmt.Errorf("failed to read ballot %s: %w", addr, err)
	}
	b, err := DecodeBallot(data)
	if err != nil {
		return models.Ballot{}, false, err
	}
	return b, true, nil
}

// MustGet is Get for addresses the tally says have a ballot.
// A missing record means the ledger is inconsistent.
func (s BallotStore) MustGet(addr models.Address) (models.Ballot, error) {
	b, ok, err := s.Get(addr)
	if err != nil {
		return models.Ballot{}, err
	}
	if !ok {
		return models.Ballot{}, fmt.Errorf("%w: ballot for %s", ErrMissingRecord, addr)
	}
	return b, nil
}

func (s BallotStore) Put(addr models.Address, b models.Ballot) error {
	data, err := EncodeBallot(b)
	if err != nil {
		return err
	}
	if err := s.kv.Set([]byte(addr), data); err != nil {
		return fmt.Errorf("failed to write ballot %s: %w", addr, err)
	}
	return nil
}

// TallyStore holds the two fixed records: the tally and the poll text.
type TallyStore struct {
	kv ledger.Store
}

func NewTallyStore(kv ledger.Store) TallyStore {
	return TallyStore{kv: kv}
}

// Exists reports whether the tally record has been written.
func (s TallyStore) Exists() (bool, error) {
	_, err := s.kv.Get(TallyKey)
	if errors.Is(err, ledger.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read tally: %w", err)
	}
	return true, nil
}

func (s TallyStore) Load() (models.Tally, error) {
	data, err := s.kv.Get(TallyKey)
	if errors.Is(err, ledger.ErrNotFound) {
		return models.Tally{}, fmt.Errorf("%w: tally", ErrMissingRecord)
	}
	if err != nil {
		return models.Tally{}, fmt.Errorf("failed to read tally: %w", err)
	}
	return DecodeTally(data)
}

func (s TallyStore) Save(t models.Tally) error {
	data, err := EncodeTally(t)
	if err != nil {
		return err
	}
	if err := s.kv.Set(TallyKey, data); err != nil {
		return fmt.Errorf("failed to write tally: %w", err)
	}
	return nil
}

// Poll returns the poll text stored as raw UTF-8.
func (s TallyStore) Poll() (string, error) {
	data, err := s.kv.Get(PollKey)
	if errors.Is(err, ledger.ErrNotFound) {
		return "", fmt.Errorf("%w: poll", ErrMissingRecord)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read poll: %w", err)
	}
	return string(data), nil
}

func (s TallyStore) SavePoll(text string) error {
	if err := s.kv.Set(PollKey, []byte(text)); err != nil {
		return fmt.Errorf("failed to write poll: %w", err)
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// used to size the bloom filter; too small raises the false positive rate
const bloomBitsPerKey = 10

// LevelDBStore persists the ledger in a LevelDB directory.
type LevelDBStore struct {
	db *leveldb.DB
}

// NewLevelDBStore opens (or creates) the database at dir, recovering it
// if the manifest is corrupted.
func NewLevelDBStore(dir string) (*LevelDBStore, error) {
	o := opt.Options{
		NoSync: false,
		Filter: filter.NewBloomFilter(bloomBitsPerKey),
	}

	db, err := leveldb.OpenFile(dir, &o)
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(dir, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open leveldb at %s: %w", dir, err)
	}

	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Get(key []byte) ([]byte, error) {
	v, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, leveldb.ErrClosed) {
		return nil, ErrClosed
	}
	return v, err
}

func (s *LevelDBStore) Set(key, value []byte) error {
	err := s.db.Put(key, value, nil)
	if errors.Is(err, leveldb.ErrClosed) {
		return ErrClosed
	}
	return err
}

// WriteBatch applies all writes in a single leveldb.Batch.
func (s *LevelDBStore) WriteBatch(writes []Write) error {
	batch := new(leveldb.Batch)
	for _, w := range writes {
		batch.Put(w.Key, w.Value)
	}
	err := s.db.Write(batch, nil)
	if errors.Is(err, leveldb.ErrClosed) {
		return ErrClosed
	}
	return err
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}

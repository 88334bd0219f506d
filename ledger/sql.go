// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"database/sql"
	"errors"
	"fmt"
)

const (
	selectValue = `SELECT v FROM ledger_kv WHERE k = $1`
	upsertValue = `
		INSERT INTO ledger_kv (k, v) VALUES ($1, $2)
		ON CONFLICT (k) DO UPDATE SET v = excluded.v
	`
)

// SQLStore keeps the ledger in the ledger_kv table created by db.CreateSchema.
// The same statements run on sqlite and postgres.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(key []byte) ([]byte, error) {
	var v []byte
	err := s.db.QueryRow(selectValue, key).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if errors.Is(err, sql.ErrConnDone) {
		return nil, ErrClosed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}
	return v, nil
}

func (s *SQLStore) Set(key, value []byte) error {
	if _, err := s.db.Exec(upsertValue, key, value); err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// WriteBatch applies all writes inside one transaction.
func (s *SQLStore) WriteBatch(writes []Write) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, w := range writes {
		if _, err := tx.Exec(upsertValue, w.Key, w.Value); err != nil {
			return fmt.Errorf("failed to write key: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

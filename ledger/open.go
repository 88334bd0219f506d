// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"fmt"

	"github.com/danielhkuo/liquid-poll/db"
)

// Store types accepted by Open
const (
	TypeMemory   = "memory"
	TypeLevelDB  = "leveldb"
	TypeSQLite   = db.TypeSQLite
	TypePostgres = db.TypePostgres
)

// Open returns the backend for storeType. url is a LevelDB directory for
// leveldb, a DSN for sqlite/postgres, and ignored for memory.
func Open(storeType, url string) (Backend, error) {
	switch storeType {
	case TypeMemory:
		return NewMemoryStore(), nil
	case TypeLevelDB:
		return NewLevelDBStore(url)
	case TypeSQLite, TypePostgres:
		conn, err := db.Open(storeType, url)
		if err != nil {
			return nil, err
		}
		if err := db.CreateSchema(conn, storeType); err != nil {
			conn.Close()
			return nil, err
		}
		return NewSQLStore(conn), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", storeType)
	}
}

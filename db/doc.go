// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens SQL connections and creates the ledger schema.

# Drivers

Open selects the driver from the database type:

  - sqlite:   modernc.org/sqlite (pure Go, no cgo)
  - postgres: github.com/lib/pq

	conn, err := db.Open(db.TypeSQLite, "file:poll.db")

# Schema Creation

CreateSchema initializes the single ledger table:

	if err := db.CreateSchema(conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS.

# Tables

  - ledger_kv: raw key/value records (k primary key, v value)

The poll state is three kinds of records in that one table:

	"poll"          → poll text
	"tally"         → JSON tally
	<voter address> → JSON ballot

Keys and values are stored as BYTEA (postgres) or BLOB (sqlite).
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the liquid-poll API server.

liquid-poll runs a single yes/no poll with liquid democracy: every voter
either votes directly or delegates their vote, along with everything
already delegated to them, to another address.

# Starting the Server

The first start needs the question and a voter token salt:

	POLL_TEXT="Is the sky blue?" VOTER_TOKEN_SALT=... DATABASE_URL=poll.db go run .

Or with flags:

	go run . -store leveldb -d ./data -poll "Is the sky blue?" -duration 86400 -token-salt ...

Later starts reopen the same ledger and keep the stored poll. Settings can
also live in a .env file next to the binary.

# Issuing Voter Tokens

Tokens are derived from the address and the salt, so they can be issued
offline:

	go run . -token-salt ... -issue-token alice

# Configuration

Required settings:

  - VOTER_TOKEN_SALT (-token-salt): Secret for voter token HMAC
  - DATABASE_URL (-d): sqlite/postgres DSN or LevelDB directory (not for memory)
  - POLL_TEXT (-poll): only on first start

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - STORE_TYPE (-store): memory, leveldb, sqlite or postgres (default: sqlite)
  - POLL_DURATION (-duration): window length in seconds (default: one week)
  - EARLY_RESULTS (-early-results): show the tally while voting is open
  - MAX_DELEGATION_HOPS (-max-hops): longest delegation chain (default: 1024)

# Architecture

  - tally: vote tally engine, delegation resolver, disclosure policy
  - state: ballot and tally records on top of the ledger
  - ledger: key/value storage (memory, LevelDB, SQL) and per-call write batches
  - db: SQL driver opening and schema
  - handlers: HTTP request handlers, serialized through one Host
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging with request ids, JSON helpers, padding
  - models: domain and request/response types
  - auth: addresses, voter tokens, IP hashing
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

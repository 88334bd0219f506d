// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv pulls a .env file into the environment, then ParseFlags returns a
Config struct with all settings:

	if err := cliparse.LoadEnv(".env"); err != nil {
		// ...
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags and Environment Variables

	-p              PORT                 Server port (default 3318)
	-store          STORE_TYPE           memory, leveldb, sqlite or postgres (default sqlite)
	-d              DATABASE_URL         DSN, or directory for leveldb
	-poll           POLL_TEXT            Question asked on first start
	-duration       POLL_DURATION        Voting window in seconds (default one week)
	-early-results  EARLY_RESULTS        Disclose the tally while voting is open
	-max-hops       MAX_DELEGATION_HOPS  Longest delegation chain (default 1024)
	-token-salt     VOTER_TOKEN_SALT     Secret for voter token HMAC
	-issue-token                         Print the token for an address and exit

CLI flags take precedence over environment variables, which take precedence
over the .env file.

# Validation

ParseFlags returns an error if required values are missing:

  - VOTER_TOKEN_SALT must be provided
  - DATABASE_URL must be provided unless the store is memory or a token is
    being issued
*/
package cliparse

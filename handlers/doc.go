// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the liquid-poll API.

# Host

The engine must never run two operations at once. All handlers share one
Host, which holds a mutex and a Clock and stamps each operation with the
current time:

	host := handlers.NewHost(engine, handlers.UnixClock)

# Handler Types

  - PollHandler: question, voting window, closing
  - VotingHandler: ballot submission
  - ResultsHandler: the tally, sealed by the disclosure policy

	pollHandler := handlers.NewPollHandler(host)
	votingHandler := handlers.NewVotingHandler(host, cfg)

# Voting

	POST /ballots  {"vote": true}  or  {"delegate": "bob"}

The caller is named by X-Voter-Address and proven by X-Voter-Token, an
HMAC of the address under the configured salt. Every outcome the engine
reports comes back as 200 with a body padded to 256 bytes; the status and
outcome fields tell accepted, closed and already_finalized apart.

# Errors

	invalid request / address      400
	bad or missing voter token     401
	tally sealed                   403
	delegation cycle or too deep   409
	poll not initialized           503
	storage failure                500
*/
package handlers

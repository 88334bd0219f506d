// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the liquid-poll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	host := handlers.NewHost(engine, handlers.UnixClock)
	mux := router.NewRouter(host, cfg)

# Endpoints

Health:

	GET /health

Poll (public):

	GET  /poll        - Poll question
	GET  /poll/window - Voting window, with a humanized end time
	POST /poll/close  - Record completion once the window has ended

Voting (requires X-Voter-Address and X-Voter-Token):

	POST /ballots - Vote yes/no or delegate to another address

Results:

	GET /tally - Counts and voters (403 while sealed)

All engine-backed handlers share the one Host, so operations never
interleave.
*/
package router

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/liquid-poll/cliparse"
	"github.com/danielhkuo/liquid-poll/handlers"
	"github.com/danielhkuo/liquid-poll/middleware"
)

func NewRouter(host *handlers.Host, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(host)
	votingHandler := handlers.NewVotingHandler(host, cfg)
	resultsHandler := handlers.NewResultsHandler(host)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll info (public, never sealed)
	mux.HandleFunc("GET /poll", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("GET /poll/window", middleware.WithLogging(pollHandler.GetWindow))
	mux.HandleFunc("POST /poll/close", middleware.WithLogging(pollHandler.ClosePoll))

	// Voting (requires X-Voter-Address and X-Voter-Token)
	mux.HandleFunc("POST /ballots", middleware.WithLogging(votingHandler.SubmitBallot))

	// Results (sealed until the poll completes unless early results are on)
	mux.HandleFunc("GET /tally", middleware.WithLogging(resultsHandler.GetTally))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("liquid-poll API v1"))
	})

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/liquid-poll/auth"
	"github.com/danielhkuo/liquid-poll/cliparse"
	"github.com/danielhkuo/liquid-poll/middleware"
	"github.com/danielhkuo/liquid-poll/models"
	"github.com/danielhkuo/liquid-poll/tally"
)

// Caller identity headers
const (
	VoterAddressHeader = "X-Voter-Address"
	VoterTokenHeader   = "X-Voter-Token"
)

type VotingHandler struct {
	host *Host
	cfg  cliparse.Config
}

func NewVotingHandler(host *Host, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{host: host, cfg: cfg}
}

// SubmitBallot handles POST /ballots
//
// Every outcome the engine reports, accepted or not, is answered with 200
// and a padded body; only aborted calls get an error status.
func (h *VotingHandler) SubmitBallot(w http.ResponseWriter, r *http.Request) {
	caller, err := auth.CanonicalAddress(r.Header.Get(VoterAddressHeader))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Voter-Address header must hold a valid address")
		return
	}

	// Get voter token from header
	voterToken := r.Header.Get(VoterTokenHeader)
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}
	if err := auth.ValidateVoterToken(caller, voterToken, h.cfg.TokenSalt); err != nil {
		writeEngineError(w, r, err)
		return
	}

	// Parse request
	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var delegate *models.Address
	if req.Delegate != nil {
		to, err := auth.CanonicalAddress(*req.Delegate)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "delegate must be a valid address")
			return
		}
		addr := models.Address(to)
		delegate = &addr
	}

	choice, ok := models.NewChoice(req.Vote, delegate)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exactly one of vote or delegate is required")
		return
	}

	var out models.Outcome
	err = h.host.do(func(e *tally.Engine, now uint64) error {
		var err error
		out, err = e.Submit(models.Address(caller), choice, now)
		return err
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	slog.Info("ballot submitted",
		"request_id", middleware.RequestID(r.Context()),
		"ip_hash", auth.HashIP(middleware.GetClientIP(r), h.cfg.TokenSalt),
		"outcome", out.Kind,
	)

	resp := models.SubmitBallotResponse{
		Status:  out.Status,
		Outcome: out.Kind,
		Message: out.Message,
		Vote:    out.Vote,
	}
	if out.Delegate != nil {
		to := string(*out.Delegate)
		resp.Delegate = &to
	}
	middleware.PaddedJSONResponse(w, http.StatusOK, resp)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/liquid-poll/middleware"
	"github.com/danielhkuo/liquid-poll/models"
	"github.com/danielhkuo/liquid-poll/tally"
)

type ResultsHandler struct {
	host *Host
}

func NewResultsHandler(host *Host) *ResultsHandler {
	return &ResultsHandler{host: host}
}

// GetTally handles GET /tally
// Sealed (403) until the poll completes unless early results are allowed.
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	var t models.Tally
	err := h.host.do(func(e *tally.Engine, _ uint64) error {
		var err error
		t, err = e.Tally()
		return err
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	voters := make([]string, 0, len(t.Voters))
	for _, v := range t.VoterList() {
		voters = append(voters, string(v))
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		Yes:                 t.Yes,
		No:                  t.No,
		Voters:              voters,
		InitTimestamp:       t.InitTimestamp,
		EndTimestamp:        t.EndTimestamp,
		EarlyResultsAllowed: t.EarlyResultsAllowed,
		IsCompleted:         t.IsCompleted,
	})
}

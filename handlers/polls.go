// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/liquid-poll/middleware"
	"github.com/danielhkuo/liquid-poll/models"
	"github.com/danielhkuo/liquid-poll/tally"
)

type PollHandler struct {
	host *Host
}

func NewPollHandler(host *Host) *PollHandler {
	return &PollHandler{host: host}
}

// GetPoll handles GET /poll
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	var text string
	err := h.host.do(func(e *tally.Engine, _ uint64) error {
		var err error
		text, err = e.Poll()
		return err
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollResponse{Poll: text})
}

// GetWindow handles GET /poll/window
func (h *PollHandler) GetWindow(w http.ResponseWriter, r *http.Request) {
	var win models.Window
	err := h.host.do(func(e *tally.Engine, _ uint64) error {
		var err error
		win, err = e.Window()
		return err
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	endsAt := unixTime(win.EndTimestamp)
	middleware.JSONResponse(w, http.StatusOK, models.WindowResponse{
		InitTimestamp:       win.InitTimestamp,
		EndTimestamp:        win.EndTimestamp,
		EarlyResultsAllowed: win.EarlyResultsAllowed,
		IsCompleted:         win.IsCompleted,
		EndsAt:              endsAt,
		Ends:                humanize.Time(endsAt),
	})
}

// ClosePoll handles POST /poll/close
// Completes the poll if its window has ended; harmless otherwise.
func (h *PollHandler) ClosePoll(w http.ResponseWriter, r *http.Request) {
	var closed bool
	err := h.host.do(func(e *tally.Engine, now uint64) error {
		var err error
		closed, err = e.Close(now)
		return err
	})
	if err != nil {
		writeEngineError(w, r, err)
		return
	}

	resp := models.ClosePollResponse{Closed: closed, Message: "Poll is closed"}
	if !closed {
		resp.Message = "Voting is still open"
	}
	slog.Info("close requested", "request_id", middleware.RequestID(r.Context()), "closed", closed)

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// maxJSONTime is the latest instant time.Time can marshal to JSON.
var maxJSONTime = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// unixTime converts poll seconds to a UTC time, saturating at maxJSONTime.
func unixTime(sec uint64) time.Time {
	if sec > uint64(maxJSONTime.Unix()) {
		return maxJSONTime
	}
	return time.Unix(int64(sec), 0).UTC()
}

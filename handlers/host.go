// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/danielhkuo/liquid-poll/auth"
	"github.com/danielhkuo/liquid-poll/middleware"
	"github.com/danielhkuo/liquid-poll/tally"
)

// Clock returns the current time in the poll's time units.
type Clock func() uint64

// UnixClock reports wall-clock time in seconds since the Unix epoch.
func UnixClock() uint64 {
	return uint64(time.Now().Unix())
}

// Host runs engine operations one at a time and stamps each with the
// clock. Every handler of one server shares a single Host.
type Host struct {
	mu     sync.Mutex
	engine *tally.Engine
	clock  Clock
}

func NewHost(engine *tally.Engine, clock Clock) *Host {
	if clock == nil {
		clock = UnixClock
	}
	return &Host{engine: engine, clock: clock}
}

// do runs fn with exclusive access to the engine.
func (h *Host) do(fn func(e *tally.Engine, now uint64) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.engine, h.clock())
}

// writeEngineError maps engine and auth errors onto HTTP responses
func writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "Storage error"

	switch {
	case errors.Is(err, tally.ErrInvalidRequest), errors.Is(err, auth.ErrInvalidAddress):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "Invalid voter token for this address"
	case errors.Is(err, tally.ErrUnauthorized):
		status, message = http.StatusForbidden, "Results are sealed until the poll ends"
	case errors.Is(err, tally.ErrDelegationCycle), errors.Is(err, tally.ErrDelegationTooDeep):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, tally.ErrAlreadyInitialized):
		status, message = http.StatusConflict, "Poll already initialized"
	case errors.Is(err, tally.ErrNotInitialized):
		status, message = http.StatusServiceUnavailable, "Poll is not initialized"
	}

	if status == http.StatusInternalServerError {
		slog.Error("engine failure", "request_id", middleware.RequestID(r.Context()), "error", err)
	}
	middleware.ErrorResponse(w, status, message)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Every request gets a UUID, echoed in the X-Request-ID response header and
available to handlers through RequestID(r.Context()). Logs request start
(request_id, method, path) and completion (status, duration_ms). The raw
client address is never logged.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers
Content-Type, X-Voter-Address, X-Voter-Token, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Ballot responses are padded with spaces to a multiple of BlockSize (256)
bytes so their length does not reveal the outcome:

	middleware.PaddedJSONResponse(w, http.StatusOK, resp)

Parse JSON request bodies (unknown fields rejected):

	var req models.SubmitBallotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Only ever logged through auth.HashIP.
*/
package middleware

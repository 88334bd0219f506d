// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth establishes who is calling the poll.

# Addresses

A voter is identified by an opaque address string. The host canonicalizes
what it receives before handing it to the engine:

	addr, err := auth.CanonicalAddress(r.Header.Get("X-Voter-Address"))

Surrounding whitespace is dropped; empty, oversized, non-UTF-8 or
control-character addresses fail with ErrInvalidAddress.

# Voter Tokens

Voter tokens use HMAC-SHA256 over the address:

	token := auth.GenerateVoterToken(addr, salt)
	err := auth.ValidateVoterToken(addr, token, salt)

The token is URL-safe base64 encoded without padding. Since it's
deterministic, the operator can issue tokens offline (see the -issue-token
flag) and the server validates them without storing anything.

# IP Hashing

Request logs never carry the raw client IP:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256, keyed separately from
voter tokens.
*/
package auth

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidAddress = errors.New("invalid voter address")
	ErrInvalidToken   = errors.New("invalid voter token")
)

// MaxAddressLen bounds the byte length of a voter address.
const MaxAddressLen = 128

// CanonicalAddress trims surrounding whitespace and checks that the result
// is a usable voter address: non-empty UTF-8, no control characters.
func CanonicalAddress(raw string) (string, error) {
	addr := strings.TrimSpace(raw)
	if addr == "" || len(addr) > MaxAddressLen || !utf8.ValidString(addr) {
		return "", ErrInvalidAddress
	}
	for _, r := range addr {
		if unicode.IsControl(r) {
			return "", ErrInvalidAddress
		}
	}
	return addr, nil
}

// GenerateVoterToken creates the HMAC-based token that proves control of
// address. This is deterministic and verifiable without storage.
func GenerateVoterToken(address, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(address))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateVoterToken checks if the provided token was issued for address
func ValidateVoterToken(address, token, salt string) error {
	expected := GenerateVoterToken(address, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidToken
	}
	return nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte("ip:"+salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough to correlate log lines
	return hex.EncodeToString(sum[:8])
}

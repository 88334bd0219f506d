// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/liquid-poll/auth"
	"github.com/danielhkuo/liquid-poll/cliparse"
	"github.com/danielhkuo/liquid-poll/ledger"
	"github.com/danielhkuo/liquid-poll/tally"
)

// TestPoll is the question every test poll asks
const TestPoll = "Is the sky blue?"

// TestDuration is the window length of test polls, starting at time 0
const TestDuration = 10_000_000

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:      3318,
		StoreType: cliparse.StoreMemory,
		PollText:  TestPoll,
		Duration:  TestDuration,
		MaxHops:   tally.DefaultMaxHops,
		TokenSalt: "test-token-salt",
	}
}

// Clock is a settable time source for handlers
type Clock struct {
	now atomic.Uint64
}

func (c *Clock) Now() uint64 {
	return c.now.Load()
}

func (c *Clock) Set(now uint64) {
	c.now.Store(now)
}

// SetupTestEngine returns an engine over a fresh memory ledger, with the
// test poll initialized at time 0.
func SetupTestEngine(t *testing.T, earlyResults bool) (*tally.Engine, *ledger.MemoryStore) {
	t.Helper()

	store := ledger.NewMemoryStore()
	engine := tally.NewEngine(store, tally.DefaultMaxHops)
	if err := engine.Init(TestPoll, TestDuration, earlyResults, 0); err != nil {
		t.Fatalf("Failed to initialize test poll: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return engine, store
}

// VoterHeaders returns the identity headers for address
func VoterHeaders(cfg cliparse.Config, address string) map[string]string {
	return map[string]string{
		"X-Voter-Address": address,
		"X-Voter-Token":   auth.GenerateVoterToken(address, cfg.TokenSalt),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

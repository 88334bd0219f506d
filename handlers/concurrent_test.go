// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/liquid-poll/models"
	"github.com/danielhkuo/liquid-poll/state"
	"github.com/danielhkuo/liquid-poll/testutil"
)

// TestConcurrentBallotSubmissions verifies that simultaneous submissions
// from different voters are all counted exactly once
func TestConcurrentBallotSubmissions(t *testing.T) {
	s := newTestServer(t, true)

	numVoters := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			w := s.submit(fmt.Sprintf("voter-%02d", voterIdx), map[string]interface{}{"vote": voterIdx%2 == 0})
			if w.Code == http.StatusOK {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful submissions, got %d", numVoters, successCount.Load())
	}

	got := s.tally(t)
	if got.Yes != 10 || got.No != 10 {
		t.Errorf("Expected 10 yes 10 no, got %d yes %d no", got.Yes, got.No)
	}
	if len(got.Voters) != numVoters {
		t.Errorf("Expected %d voters, got %d", numVoters, len(got.Voters))
	}
}

// TestConcurrentDoubleVote verifies that one voter racing against itself
// gets exactly one ballot accepted
func TestConcurrentDoubleVote(t *testing.T) {
	s := newTestServer(t, true)

	attempts := 10
	var accepted atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			w := s.submit("alice", map[string]interface{}{"vote": i%2 == 0})
			var resp models.SubmitBallotResponse
			if w.Code == http.StatusOK {
				// decoding errors leave resp zero, which is not counted
				_ = json.Unmarshal(w.Body.Bytes(), &resp)
			}
			if resp.Outcome == models.OutcomeAccepted {
				accepted.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if accepted.Load() != 1 {
		t.Errorf("Expected exactly 1 accepted ballot, got %d", accepted.Load())
	}
	if got := s.tally(t); got.Yes+got.No != 1 {
		t.Errorf("Expected a single counted vote, got %d yes %d no", got.Yes, got.No)
	}
}

// TestConcurrentDelegations verifies that weight delegated to the same
// address at the same time is not lost
func TestConcurrentDelegations(t *testing.T) {
	s := newTestServer(t, true)

	numDelegators := 15
	var wg sync.WaitGroup

	for i := 0; i < numDelegators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.submit(fmt.Sprintf("delegator-%02d", i), map[string]interface{}{"delegate": "rep"})
		}(i)
	}

	wg.Wait()

	rep, err := state.NewBallotStore(s.store).MustGet("rep")
	if err != nil {
		t.Fatalf("Expected a pending ballot for rep: %v", err)
	}
	if rep.HasVoted || rep.VoteValue != uint64(numDelegators+1) {
		t.Errorf("Expected pending ballot worth %d, got %+v", numDelegators+1, rep)
	}

	s.submit("rep", map[string]interface{}{"vote": true})
	if got := s.tally(t); got.Yes != uint64(numDelegators+1) {
		t.Errorf("Expected %d yes, got %d", numDelegators+1, got.Yes)
	}
}

// TestConcurrentCloseAndSubmit verifies that closing races with late
// submissions without counting any of them
func TestConcurrentCloseAndSubmit(t *testing.T) {
	s := newTestServer(t, false)
	s.submit("alice", map[string]interface{}{"vote": true})
	s.clock.Set(11_000_000)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.submit(fmt.Sprintf("late-%d", i), map[string]interface{}{"vote": false})
		}(i)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			s.polls.ClosePoll(w, testutil.MakeRequest("POST", "/poll/close", nil, nil))
		}()
	}
	wg.Wait()

	got := s.tally(t)
	if !got.IsCompleted || got.Yes != 1 || got.No != 0 {
		t.Errorf("Expected completed tally with only alice counted, got %+v", got)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types for the poll.

# Domain Types

  - Tally: yes/no weight, voter set, voting window, disclosure flags
  - Ballot: per-address record (finalized or pending delegated weight)
  - Address: voter identifier
  - Choice: VoteChoice or DelegateChoice, never both
  - Outcome: what a submission did, plus the caller's recorded vote/delegate
  - Window: tally metadata that is visible while results are sealed

# Request Types

  - SubmitBallotRequest: vote (bool) or delegate (address)

# Response Types

  - SubmitBallotResponse: status, outcome, message, vote, delegate
  - PollResponse: poll
  - WindowResponse: timestamps, flags, humanized end
  - ClosePollResponse: closed, message
  - TallyResponse: yes, no, voters, timestamps, flags
  - ErrorResponse: error, message

# Constants

Status values:

	StatusSuccess = "success"
	StatusFailure = "failure"

Outcome kinds:

	OutcomeAccepted         = "accepted"
	OutcomeClosed           = "closed"
	OutcomeAlreadyFinalized = "already_finalized"
*/
package models

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Choice is what a submission asks for: a direct vote or a delegation.
// The only implementations are VoteChoice and DelegateChoice.
type Choice interface {
	isChoice()
}

type VoteChoice struct {
	Yes bool
}

type DelegateChoice struct {
	To Address
}

func (VoteChoice) isChoice()     {}
func (DelegateChoice) isChoice() {}

// NewChoice builds a Choice from the optional wire fields.
// It reports false unless exactly one of them is set.
func NewChoice(vote *bool, delegate *Address) (Choice, bool) {
	switch {
	case vote != nil && delegate == nil:
		return VoteChoice{Yes: *vote}, true
	case vote == nil && delegate != nil:
		return DelegateChoice{To: *delegate}, true
	default:
		return nil, false
	}
}

// Fields is the inverse of NewChoice.
func Fields(c Choice) (vote *bool, delegate *Address) {
	switch c := c.(type) {
	case VoteChoice:
		v := c.Yes
		return &v, nil
	case DelegateChoice:
		d := c.To
		return nil, &d
	}
	return nil, nil
}

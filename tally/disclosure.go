// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import "github.com/danielhkuo/liquid-poll/models"

// Disclose reports whether t may be shown: always when early results are
// allowed, otherwise only once the poll is completed. There is no partial view.
func Disclose(t models.Tally) error {
	if !t.EarlyResultsAllowed && !t.IsCompleted {
		return ErrUnauthorized
	}
	return nil
}

// Tally returns the full tally if the disclosure policy allows it.
func (e *Engine) Tally() (models.Tally, error) {
	t, err := e.begin().loadTally()
	if err != nil {
		return models.Tally{}, err
	}
	if err := Disclose(t); err != nil {
		return models.Tally{}, err
	}
	return t, nil
}

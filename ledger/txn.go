// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

// Txn buffers the writes of one invocation on top of a Backend.
// Reads observe earlier writes of the same Txn. Nothing reaches the
// backend until Commit, which applies the writes as one batch in the
// order their keys were first written.
type Txn struct {
	base   Backend
	writes map[string][]byte
	order  []string
}

func Begin(base Backend) *Txn {
	return &Txn{base: base, writes: make(map[string][]byte)}
}

func (t *Txn) Get(key []byte) ([]byte, error) {
	if v, ok := t.writes[string(key)]; ok {
		return clone(v), nil
	}
	return t.base.Get(key)
}

func (t *Txn) Set(key, value []byte) error {
	k := string(key)
	if _, ok := t.writes[k]; !ok {
		t.order = append(t.order, k)
	}
	t.writes[k] = clone(value)
	return nil
}

func (t *Txn) Commit() error {
	if len(t.order) == 0 {
		return nil
	}
	batch := make([]Write, 0, len(t.order))
	for _, k := range t.order {
		batch = append(batch, Write{Key: []byte(k), Value: t.writes[k]})
	}
	if err := t.base.WriteBatch(batch); err != nil {
		return err
	}
	t.Discard()
	return nil
}

// Discard drops every buffered write.
func (t *Txn) Discard() {
	t.writes = make(map[string][]byte)
	t.order = nil
}

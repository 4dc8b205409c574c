package planner

import (
	"github.com/mitchellh/hashstructure/v2"
)

// memoSize is how many recent evaluations a Memo keeps.
const memoSize = 8

// Memo caches recent Evaluate results keyed by a hash of their Input.
//
// The dashboard evaluates after every state change and after a change of
// date. Undoing a change (toggling a day off and on again, committing a
// field with its current value) lands on an input seen moments ago, and the
// Memo returns that result without walking the range again.
//
// Result.Days is shared between callers and must not be modified.
// Not safe for concurrent use.
type Memo struct {
	entries []memoEntry // least recently used first

	Hits   int
	Misses int
}

type memoEntry struct {
	hash uint64
	res  Result
	err  error
}

// Evaluate returns the cached result for in when there is one, and
// evaluates otherwise. Inputs that cannot be hashed are evaluated without
// caching.
func (m *Memo) Evaluate(in Input) (Result, error) {
	h, hashErr := hashstructure.Hash(in, hashstructure.FormatV2, nil)
	if hashErr == nil {
		for i, e := range m.entries {
			if e.hash != h {
				continue
			}
			m.Hits++
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			m.entries = append(m.entries, e)
			return e.res, e.err
		}
	}

	m.Misses++
	res, err := Evaluate(in)
	if hashErr != nil {
		return res, err
	}

	if len(m.entries) == memoSize {
		copy(m.entries, m.entries[1:])
		m.entries = m.entries[:len(m.entries)-1]
	}
	m.entries = append(m.entries, memoEntry{hash: h, res: res, err: err})
	return res, err
}

// Reset drops every cached result.
func (m *Memo) Reset() {
	m.entries = nil
}

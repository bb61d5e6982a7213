/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package kripke holds the logical side of the editor: a finite Kripke model
// with per-state boolean valuations over a fixed set of propositional
// variables and a directed accessibility relation kept as adjacency lists.
//
// State ids are assigned monotonically and never reused. Deleting a state
// tombstones its slot (nil valuation, empty transition list) so that the ids
// of all other states remain stable; the visual layer relies on that for
// node identity.
package kripke

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by RemoveTransition when the transition is absent.
var ErrNotFound = errors.New("transition not found")

// Model is a finite Kripke frame plus valuations.
// States[i] is the valuation vector of state i (len == len(Vars)), or nil if
// the state has been tombstoned. Relation[i] lists the ids reachable from i,
// in insertion order, without duplicates.
type Model struct {
	Vars     []string
	States   [][]bool
	Relation [][]int
}

// New creates an empty model over the given propositional variables.
func New(vars []string) *Model {
	return &Model{Vars: append([]string(nil), vars...)}
}

// NumStates returns the number of state slots, including tombstones.
func (m *Model) NumStates() int { return len(m.States) }

// Live reports whether id names an existing, non-tombstoned state.
func (m *Model) Live(id int) bool {
	return id >= 0 && id < len(m.States) && m.States[id] != nil
}

// AddState appends a state with the given valuation and returns its id.
// The valuation is copied and padded or truncated to len(Vars).
func (m *Model) AddState(valuation []bool) int {
	v := make([]bool, len(m.Vars))
	copy(v, valuation)
	m.States = append(m.States, v)
	m.Relation = append(m.Relation, nil)
	return len(m.States) - 1
}

// TombstoneState marks the state as deleted. Its slot is kept so later ids
// stay stable; the valuation becomes nil and outgoing transitions are
// dropped. Incoming transitions are the caller's responsibility.
func (m *Model) TombstoneState(id int) {
	m.States[id] = nil
	m.Relation[id] = nil
}

// AddTransition appends to to from's successor list. The caller must ensure
// the transition is not already present.
func (m *Model) AddTransition(from, to int) {
	m.Relation[from] = append(m.Relation[from], to)
}

// RemoveTransition removes the first occurrence of from->to.
func (m *Model) RemoveTransition(from, to int) error {
	succ := m.Relation[from]
	for i, s := range succ {
		if s == to {
			m.Relation[from] = append(succ[:i], succ[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("remove %d->%d: %w", from, to, ErrNotFound)
}

// HasTransition reports whether from->to exists.
func (m *Model) HasTransition(from, to int) bool {
	for _, s := range m.Relation[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Successors returns the successor list of id. The slice is shared with the
// model; callers must not mutate it.
func (m *Model) Successors(id int) []int { return m.Relation[id] }

// Valuation returns the valuation vector of id (nil for tombstones). The
// slice is shared with the model.
func (m *Model) Valuation(id int) []bool { return m.States[id] }

// SetValue assigns one propositional variable at the given state.
func (m *Model) SetValue(id, varIndex int, value bool) {
	m.States[id][varIndex] = value
}

// VarIndex returns the index of the named variable, or -1.
func (m *Model) VarIndex(name string) int {
	for i, v := range m.Vars {
		if v == name {
			return i
		}
	}
	return -1
}

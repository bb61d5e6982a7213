/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package modelspec

import (
	"fmt"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
)

// Document is the persisted form of a model. Only live states are listed;
// NextID preserves the id allocator position so tombstoned ids stay retired
// across a save/load round trip.
type Document struct {
	Name     string      `json:"name" yaml:"name"`
	Vars     []string    `json:"vars" yaml:"vars"`
	VarCount int         `json:"varCount,omitempty" yaml:"varCount,omitempty"`
	NextID   int         `json:"nextId,omitempty" yaml:"nextId,omitempty"`
	States   []StateSpec `json:"states" yaml:"states"`
	Links    []LinkSpec  `json:"links" yaml:"links"`
}

// StateSpec is one live state with its node position.
type StateSpec struct {
	ID        int     `json:"id" yaml:"id"`
	X         float64 `json:"x" yaml:"x"`
	Y         float64 `json:"y" yaml:"y"`
	Vals      []bool  `json:"vals" yaml:"vals"`
	Reflexive bool    `json:"reflexive,omitempty" yaml:"reflexive,omitempty"`
}

// LinkSpec is one link between distinct states. Source < Target; at least
// one arrow flag is set.
type LinkSpec struct {
	Source int  `json:"source" yaml:"source"`
	Target int  `json:"target" yaml:"target"`
	Left   bool `json:"left,omitempty" yaml:"left,omitempty"`
	Right  bool `json:"right,omitempty" yaml:"right,omitempty"`
}

// Check verifies the document's internal consistency beyond what the schema
// can express: unique increasing-compatible ids, valuation lengths, link
// endpoints referencing live states, normalized pairs, and a sane NextID.
func (d *Document) Check() error {
	if len(d.Vars) == 0 {
		return fmt.Errorf("document %q declares no variables", d.Name)
	}
	if d.VarCount < 0 || d.VarCount > len(d.Vars) {
		return fmt.Errorf("varCount %d out of range 0..%d", d.VarCount, len(d.Vars))
	}
	live := make(map[int]bool, len(d.States))
	maxID := -1
	for _, st := range d.States {
		if st.ID < 0 {
			return fmt.Errorf("negative state id %d", st.ID)
		}
		if live[st.ID] {
			return fmt.Errorf("duplicate state id %d", st.ID)
		}
		live[st.ID] = true
		if st.ID > maxID {
			maxID = st.ID
		}
		if len(st.Vals) != len(d.Vars) {
			return fmt.Errorf("state %d has %d values for %d variables", st.ID, len(st.Vals), len(d.Vars))
		}
	}
	if d.NextID != 0 && d.NextID <= maxID {
		return fmt.Errorf("nextId %d does not exceed max state id %d", d.NextID, maxID)
	}
	seen := make(map[[2]int]bool, len(d.Links))
	for _, l := range d.Links {
		if l.Source >= l.Target {
			return fmt.Errorf("link %d-%d is not normalized (source < target)", l.Source, l.Target)
		}
		if !live[l.Source] || !live[l.Target] {
			return fmt.Errorf("link %d-%d references a missing state", l.Source, l.Target)
		}
		if !l.Left && !l.Right {
			return fmt.Errorf("link %d-%d has no direction", l.Source, l.Target)
		}
		key := [2]int{l.Source, l.Target}
		if seen[key] {
			return fmt.Errorf("duplicate link %d-%d", l.Source, l.Target)
		}
		seen[key] = true
	}
	return nil
}

// Build materializes the document into a model/view pair ready for a
// session. The relation is derived from the arrow flags and reflexive marks,
// so the two representations start out synchronized by construction.
func (d *Document) Build() (*kripke.Model, *graph.View, error) {
	if err := d.Check(); err != nil {
		return nil, nil, err
	}
	m := kripke.New(d.Vars)
	v := &graph.View{}

	next := d.NextID
	maxID := -1
	byID := make(map[int]StateSpec, len(d.States))
	for _, st := range d.States {
		byID[st.ID] = st
		if st.ID > maxID {
			maxID = st.ID
		}
	}
	if next == 0 {
		next = maxID + 1
	}
	// allocate every slot up to NextID; ids absent from the document are
	// tombstones
	for id := 0; id < next; id++ {
		st, ok := byID[id]
		if !ok {
			m.AddState(nil)
			m.TombstoneState(id)
			continue
		}
		m.AddState(st.Vals)
		n := &graph.Node{
			ID:        id,
			X:         st.X,
			Y:         st.Y,
			Vals:      append([]bool(nil), st.Vals...),
			Reflexive: st.Reflexive,
		}
		v.AddNode(n)
		if st.Reflexive {
			m.AddTransition(id, id)
		}
	}
	for _, l := range d.Links {
		v.AddLink(&graph.Link{
			Source:     l.Source,
			Target:     l.Target,
			LeftArrow:  l.Left,
			RightArrow: l.Right,
		})
		if l.Right {
			m.AddTransition(l.Source, l.Target)
		}
		if l.Left {
			m.AddTransition(l.Target, l.Source)
		}
	}
	return m, v, nil
}

// Snapshot captures a model/view pair as a document.
func Snapshot(name string, m *kripke.Model, v *graph.View, varCount int) *Document {
	d := &Document{
		Name:     name,
		Vars:     append([]string(nil), m.Vars...),
		VarCount: varCount,
		NextID:   m.NumStates(),
		States:   []StateSpec{},
		Links:    []LinkSpec{},
	}
	for _, n := range v.Nodes {
		d.States = append(d.States, StateSpec{
			ID:        n.ID,
			X:         n.X,
			Y:         n.Y,
			Vals:      append([]bool(nil), n.Vals...),
			Reflexive: n.Reflexive,
		})
	}
	for _, l := range v.Links {
		d.Links = append(d.Links, LinkSpec{
			Source: l.Source,
			Target: l.Target,
			Left:   l.LeftArrow,
			Right:  l.RightArrow,
		})
	}
	return d
}

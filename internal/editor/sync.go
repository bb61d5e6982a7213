/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/layout"
)

// The sync engine: every operation updates model and view together and is
// fully applied or not attempted. Invariants maintained here:
//
//	link.RightArrow == Relation[source] contains target
//	link.LeftArrow  == Relation[target] contains source
//	node.Reflexive  == Relation[id] contains id
//	node.Vals       == Model valuation of id
//	at most one link per unordered pair; no link with both flags false

// CreateNode allocates the next state id with an all-false valuation and a
// mirroring node placed at the given position.
func (s *Session) CreateNode(at layout.Pt) *graph.Node {
	id := s.Model.AddState(nil)
	n := &graph.Node{
		ID:   id,
		X:    at.X,
		Y:    at.Y,
		Vals: make([]bool, len(s.Model.Vars)),
	}
	s.View.AddNode(n)
	s.redraw()
	return n
}

// DeleteNode removes the node and its state. Incident links are torn down
// first so their transitions are withdrawn while both endpoints still exist;
// only then is the state tombstoned. The id is never reused.
func (s *Session) DeleteNode(n *graph.Node) {
	if s.View.NodeByID(n.ID) == nil {
		panic(fmt.Sprintf("editor: DeleteNode on unknown node %d", n.ID))
	}
	for _, l := range s.View.LinksIncident(n.ID) {
		s.DeleteLink(l)
	}
	if n.Reflexive {
		s.mustRemoveTransition(n.ID, n.ID)
		n.Reflexive = false
	}
	s.Model.TombstoneState(n.ID)
	s.View.RemoveNode(n.ID)
	if s.selNode == n {
		s.selNode = nil
	}
	s.redraw()
}

// CreateOrUpdateLink records a drag from one node to another. Dragging a node
// onto itself is a no-op (self-loops are expressed as reflexivity, not
// links). Otherwise the unordered pair gets at most one link: an existing one
// gains the dragged direction, a new one starts with exactly that direction.
// The resulting link becomes the selection.
func (s *Session) CreateOrUpdateLink(from, to *graph.Node) *graph.Link {
	if from.ID == to.ID {
		return nil
	}
	src, dst := from.ID, to.ID
	right := src < dst
	if !right {
		src, dst = dst, src
	}
	l := s.View.LinkFor(src, dst)
	if l == nil {
		l = &graph.Link{Source: src, Target: dst}
		s.View.AddLink(l)
	}
	if right {
		if !l.RightArrow {
			l.RightArrow = true
			s.addTransitionOnce(src, dst)
		}
	} else {
		if !l.LeftArrow {
			l.LeftArrow = true
			s.addTransitionOnce(dst, src)
		}
	}
	s.selectLink(l)
	s.redraw()
	return l
}

// DeleteLink withdraws the transitions the link's arrows imply and removes
// it from the view.
func (s *Session) DeleteLink(l *graph.Link) {
	if l.LeftArrow {
		s.mustRemoveTransition(l.Target, l.Source)
	}
	if l.RightArrow {
		s.mustRemoveTransition(l.Source, l.Target)
	}
	s.View.RemoveLink(l)
	if s.selLink == l {
		s.selLink = nil
	}
	s.redraw()
}

// SetLinkDirection reconciles the link's arrow flags with the desired pair.
// Unchanged flags are untouched, so re-applying the current direction never
// mutates the relation. Both-false is not a legal target; such links are
// deleted instead.
func (s *Session) SetLinkDirection(l *graph.Link, desiredLeft, desiredRight bool) {
	if !desiredLeft && !desiredRight {
		panic("editor: SetLinkDirection to no direction; use DeleteLink")
	}
	if desiredLeft != l.LeftArrow {
		if desiredLeft {
			s.addTransitionOnce(l.Target, l.Source)
		} else {
			s.mustRemoveTransition(l.Target, l.Source)
		}
		l.LeftArrow = desiredLeft
	}
	if desiredRight != l.RightArrow {
		if desiredRight {
			s.addTransitionOnce(l.Source, l.Target)
		} else {
			s.mustRemoveTransition(l.Source, l.Target)
		}
		l.RightArrow = desiredRight
	}
	s.redraw()
}

// ToggleReflexive flips the node's self-loop.
func (s *Session) ToggleReflexive(n *graph.Node) {
	n.Reflexive = !n.Reflexive
	if n.Reflexive {
		s.addTransitionOnce(n.ID, n.ID)
	} else {
		s.mustRemoveTransition(n.ID, n.ID)
	}
	s.redraw()
}

// SetValuation writes one variable of one state into both representations.
// This is the only sanctioned path for valuation changes.
func (s *Session) SetValuation(n *graph.Node, varIndex int, value bool) {
	if varIndex < 0 || varIndex >= len(s.Model.Vars) {
		panic(fmt.Sprintf("editor: SetValuation index %d out of range", varIndex))
	}
	n.Vals[varIndex] = value
	s.Model.SetValue(n.ID, varIndex, value)
	s.redraw()
}

func (s *Session) addTransitionOnce(from, to int) {
	if s.Model.HasTransition(from, to) {
		panic(fmt.Sprintf("editor: transition %d->%d already present", from, to))
	}
	s.Model.AddTransition(from, to)
}

func (s *Session) mustRemoveTransition(from, to int) {
	if err := s.Model.RemoveTransition(from, to); err != nil {
		panic(fmt.Sprintf("editor: %v", err))
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package graph holds the visual mirror of the Kripke model: nodes with
// screen positions and links with directional arrow flags. It is a plain
// container; the editor package is the only writer and keeps it consistent
// with the logical model.
package graph

// Node mirrors one live state. ID equals the state id. X/Y are owned by the
// layout simulation; Vals is kept byte-for-byte equal to the state's
// valuation; Reflexive mirrors the presence of the self-transition.
type Node struct {
	ID        int     `json:"id"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Vals      []bool  `json:"vals"`
	Reflexive bool    `json:"reflexive"`
}

// Link is the single visual edge for an unordered node pair, normalized so
// Source < Target. RightArrow mirrors Source->Target in the relation,
// LeftArrow mirrors Target->Source. A link with both flags false is removed
// rather than kept.
type Link struct {
	Source     int  `json:"source"`
	Target     int  `json:"target"`
	LeftArrow  bool `json:"leftArrow"`
	RightArrow bool `json:"rightArrow"`
}

// View is the set of visible nodes and links.
type View struct {
	Nodes []*Node
	Links []*Link
}

// NodeByID returns the node with the given id, or nil.
func (v *View) NodeByID(id int) *Node {
	for _, n := range v.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// LinkFor returns the link joining a and b in either order, or nil.
func (v *View) LinkFor(a, b int) *Link {
	if a > b {
		a, b = b, a
	}
	for _, l := range v.Links {
		if l.Source == a && l.Target == b {
			return l
		}
	}
	return nil
}

// LinksIncident returns all links touching the given node id.
func (v *View) LinksIncident(id int) []*Link {
	var out []*Link
	for _, l := range v.Links {
		if l.Source == id || l.Target == id {
			out = append(out, l)
		}
	}
	return out
}

// AddNode appends n.
func (v *View) AddNode(n *Node) { v.Nodes = append(v.Nodes, n) }

// RemoveNode removes the node with the given id, if present.
func (v *View) RemoveNode(id int) {
	for i, n := range v.Nodes {
		if n.ID == id {
			v.Nodes = append(v.Nodes[:i], v.Nodes[i+1:]...)
			return
		}
	}
}

// AddLink appends l.
func (v *View) AddLink(l *Link) { v.Links = append(v.Links, l) }

// RemoveLink removes the given link value, if present.
func (v *View) RemoveLink(l *Link) {
	for i, x := range v.Links {
		if x == l {
			v.Links = append(v.Links[:i], v.Links[i+1:]...)
			return
		}
	}
}

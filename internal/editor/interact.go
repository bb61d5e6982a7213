/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/layout"
)

// The interaction state machine. Host event adapters (the Fyne canvas, or a
// test) perform hit-testing and feed the results in; the machine tracks the
// drag phase and turns gestures into sync-engine calls.

// Hit carries the hit-test result for a pointer event. At most one field is
// non-nil; both nil means empty canvas.
type Hit struct {
	Node *graph.Node
	Link *graph.Link
}

// Key identifies the keyboard intents the editor reacts to.
type Key int

const (
	KeyDelete Key = iota
	KeyB          // both directions (link)
	KeyL          // left only (link)
	KeyR          // reflexive (node) / right only (link)
)

// PointerDown handles a press. In edit mode: empty canvas creates a node, a
// link toggles link selection, a node toggles node selection and arms a
// potential link drag. In evaluate mode only node selection works; all
// topology edits are disabled.
func (s *Session) PointerDown(at layout.Pt, hit Hit) {
	switch {
	case hit.Node != nil:
		n := hit.Node
		if s.selNode == n {
			s.clearSelection()
		} else {
			s.selectNode(n)
		}
		if s.mode == ModeEdit {
			s.phase = phaseArmedOnNode
			s.candidate = n
			s.dragFrom = layout.Pt{X: n.X, Y: n.Y}
			s.dragTo = at
		}
		s.redraw()
	case hit.Link != nil:
		if s.mode != ModeEdit {
			return
		}
		if s.selLink == hit.Link {
			s.clearSelection()
		} else {
			s.selectLink(hit.Link)
		}
		s.redraw()
	default:
		if s.mode != ModeEdit {
			return
		}
		s.CreateNode(at)
	}
}

// PointerMove updates the transient drag indicator; it never mutates the
// model.
func (s *Session) PointerMove(at layout.Pt) {
	if s.phase != phaseArmedOnNode {
		return
	}
	s.dragTo = at
	s.redraw()
}

// PointerUp completes or cancels a link drag. A release over the armed node
// itself (or over nothing) is a plain click: the selection set on press
// stands and the indicator disappears. A release over a different node
// creates or updates the link for the pair, which becomes the selection. An
// unmatched release resets cleanly.
func (s *Session) PointerUp(hit Hit) {
	if s.phase != phaseArmedOnNode {
		s.resetDrag()
		return
	}
	candidate := s.candidate
	s.resetDrag()
	if hit.Node == nil || hit.Node == candidate {
		s.redraw()
		return
	}
	s.CreateOrUpdateLink(candidate, hit.Node)
}

// KeyPress applies a keyboard edit to the current selection. Keys are only
// accepted in edit mode while exactly one of node/link is selected.
func (s *Session) KeyPress(k Key) {
	if s.mode != ModeEdit {
		return
	}
	node, link := s.selNode, s.selLink
	if (node == nil) == (link == nil) {
		return
	}
	switch k {
	case KeyDelete:
		if node != nil {
			s.DeleteNode(node)
		} else {
			s.DeleteLink(link)
		}
		s.clearSelection()
		s.redraw()
	case KeyB:
		if link != nil {
			s.SetLinkDirection(link, true, true)
		}
	case KeyL:
		if link != nil {
			s.SetLinkDirection(link, true, false)
		}
	case KeyR:
		if node != nil {
			s.ToggleReflexive(node)
		} else {
			s.SetLinkDirection(link, false, true)
		}
	}
}

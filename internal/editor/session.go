/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor is the synchronization core of the application. A Session
// owns both representations of the model under construction — the logical
// kripke.Model and the visual graph.View — and every mutation of either goes
// through the Session so the two can never diverge. The package also houses
// the pointer/keyboard interaction state machine and the Edit/Evaluate mode
// switch that gates which edits are legal.
//
// Contract violations (an operation against a missing id, or removing a
// transition the invariants guarantee to exist) panic: they indicate a bug
// in the caller, not a user error, and must not be silently absorbed.
package editor

import (
	"fmt"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
	"github.com/silky/modallogic/internal/layout"
	"github.com/silky/modallogic/internal/modal"
)

// Checker is the model-checking capability the session consumes. modal.Checker
// is the production implementation; tests may substitute stubs.
type Checker interface {
	Parse(text string) (modal.Formula, error)
	Evaluate(m *kripke.Model, state int, f modal.Formula) (bool, error)
	Variables(text string) []string
	DisplayForm(text string) string
}

// Renderer is the drawing capability. The session calls Redraw after every
// mutation; SetFreeDrag toggles the renderer's own drag-to-reposition
// behavior when the mode changes.
type Renderer interface {
	Redraw()
	SetFreeDrag(enabled bool)
}

// Mode gates which interaction intents are legal.
type Mode int

const (
	// ModeEdit allows node/link creation and keyboard edits.
	ModeEdit Mode = iota
	// ModeEvaluate disables editing; nodes can be selected and repositioned.
	ModeEvaluate
)

func (m Mode) String() string {
	if m == ModeEvaluate {
		return "evaluate"
	}
	return "edit"
}

// ValidationError reports a recoverable evaluation precondition failure: no
// formula entered or no state selected.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UnknownVariableError reports a formula referencing a variable outside the
// active set.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}

type phase int

const (
	phaseIdle phase = iota
	phaseArmedOnNode
)

// Session is the single owner of the dual model/view state. It is not safe
// for concurrent use; the application is event-driven on one goroutine.
type Session struct {
	Model *kripke.Model
	View  *graph.View

	checker  Checker
	renderer Renderer

	mode     Mode
	varCount int

	selNode *graph.Node
	selLink *graph.Link

	// transient drag state of the interaction machine
	phase     phase
	candidate *graph.Node
	dragFrom  layout.Pt
	dragTo    layout.Pt
}

// NewSession creates a session over an existing model/view pair. varCount
// starts at the full declared variable set.
func NewSession(m *kripke.Model, v *graph.View, checker Checker, renderer Renderer) *Session {
	return &Session{
		Model:    m,
		View:     v,
		checker:  checker,
		renderer: renderer,
		varCount: len(m.Vars),
	}
}

// SelectedNode returns the selected node, or nil.
func (s *Session) SelectedNode() *graph.Node { return s.selNode }

// SelectedLink returns the selected link, or nil.
func (s *Session) SelectedLink() *graph.Link { return s.selLink }

// VarCount returns how many declared variables are currently active.
func (s *Session) VarCount() int { return s.varCount }

// SetVarCount changes the active variable count, clamped to
// [1, len(Model.Vars)]. Stored valuations are never truncated.
func (s *Session) SetVarCount(n int) {
	if n < 1 {
		n = 1
	}
	if max := len(s.Model.Vars); n > max {
		n = max
	}
	s.varCount = n
	s.redraw()
}

// ActiveVars returns the names of the currently active variables.
func (s *Session) ActiveVars() []string { return s.Model.Vars[:s.varCount] }

// DragLine reports the transient drag indicator while a link drag is in
// progress.
func (s *Session) DragLine() (from, to layout.Pt, active bool) {
	if s.phase != phaseArmedOnNode {
		return layout.Pt{}, layout.Pt{}, false
	}
	return s.dragFrom, s.dragTo, true
}

func (s *Session) selectNode(n *graph.Node) {
	s.selNode = n
	s.selLink = nil
}

func (s *Session) selectLink(l *graph.Link) {
	s.selLink = l
	s.selNode = nil
}

func (s *Session) clearSelection() {
	s.selNode = nil
	s.selLink = nil
}

func (s *Session) resetDrag() {
	s.phase = phaseIdle
	s.candidate = nil
}

func (s *Session) redraw() {
	if s.renderer != nil {
		s.renderer.Redraw()
	}
}

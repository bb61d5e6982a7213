/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import "strings"

// CurrentMode returns the current editor mode.
func (s *Session) CurrentMode() Mode { return s.mode }

// SetMode switches between Edit and Evaluate. Switching clears the selection
// and any in-flight drag, and toggles the renderer's free node repositioning;
// it never mutates model or view topology.
func (s *Session) SetMode(m Mode) {
	if m == s.mode {
		return
	}
	s.mode = m
	s.clearSelection()
	s.resetDrag()
	if s.renderer != nil {
		s.renderer.SetFreeDrag(m == ModeEvaluate)
	}
	s.redraw()
}

// EvalResult is a successful formula evaluation.
type EvalResult struct {
	Value   bool
	StateID int
	Display string // typeset rendition of the input formula
}

// EvaluateFormula checks the formula text at the selected state. Failures
// come back as one of the recoverable error kinds: *ValidationError (no
// formula, no selected state, wrong mode), *UnknownVariableError (variable
// outside the active set; detected before any parse or evaluate call), or
// the checker's own parse/evaluation errors.
func (s *Session) EvaluateFormula(text string) (EvalResult, error) {
	if s.mode != ModeEvaluate {
		return EvalResult{}, &ValidationError{Msg: "not in evaluate mode"}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return EvalResult{}, &ValidationError{Msg: "no formula entered"}
	}
	node := s.selNode
	if node == nil {
		return EvalResult{}, &ValidationError{Msg: "no state selected"}
	}
	active := s.ActiveVars()
	for _, name := range s.checker.Variables(text) {
		known := false
		for _, v := range active {
			if v == name {
				known = true
				break
			}
		}
		if !known {
			return EvalResult{}, &UnknownVariableError{Name: name}
		}
	}
	f, err := s.checker.Parse(text)
	if err != nil {
		return EvalResult{}, err
	}
	value, err := s.checker.Evaluate(s.Model, node.ID, f)
	if err != nil {
		return EvalResult{}, err
	}
	return EvalResult{
		Value:   value,
		StateID: node.ID,
		Display: s.checker.DisplayForm(text),
	}, nil
}

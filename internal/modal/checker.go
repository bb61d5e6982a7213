/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package modal

import (
	"fmt"

	"github.com/silky/modallogic/internal/kripke"
)

// EvaluationError is returned when a formula cannot be evaluated against the
// model: the state is missing or tombstoned, or an atom names an undeclared
// variable.
type EvaluationError struct {
	Msg string
}

func (e *EvaluationError) Error() string { return "evaluation error: " + e.Msg }

// Evaluate decides truth of f at the given state of m.
func Evaluate(m *kripke.Model, state int, f Formula) (bool, error) {
	if !m.Live(state) {
		return false, &EvaluationError{Msg: fmt.Sprintf("state %d does not exist", state)}
	}
	return eval(m, state, f)
}

func eval(m *kripke.Model, state int, f Formula) (bool, error) {
	switch g := f.(type) {
	case Atom:
		idx := m.VarIndex(g.Name)
		if idx < 0 {
			return false, &EvaluationError{Msg: fmt.Sprintf("undeclared variable %q", g.Name)}
		}
		return m.Valuation(state)[idx], nil
	case Not:
		v, err := eval(m, state, g.Operand)
		if err != nil {
			return false, err
		}
		return !v, nil
	case And:
		l, err := eval(m, state, g.Left)
		if err != nil {
			return false, err
		}
		r, err := eval(m, state, g.Right)
		if err != nil {
			return false, err
		}
		return l && r, nil
	case Or:
		l, err := eval(m, state, g.Left)
		if err != nil {
			return false, err
		}
		r, err := eval(m, state, g.Right)
		if err != nil {
			return false, err
		}
		return l || r, nil
	case Implies:
		l, err := eval(m, state, g.Left)
		if err != nil {
			return false, err
		}
		r, err := eval(m, state, g.Right)
		if err != nil {
			return false, err
		}
		return !l || r, nil
	case Iff:
		l, err := eval(m, state, g.Left)
		if err != nil {
			return false, err
		}
		r, err := eval(m, state, g.Right)
		if err != nil {
			return false, err
		}
		return l == r, nil
	case Box:
		for _, succ := range m.Successors(state) {
			v, err := eval(m, succ, g.Operand)
			if err != nil {
				return false, err
			}
			if !v {
				return false, nil
			}
		}
		// vacuously true at dead ends
		return true, nil
	case Diamond:
		for _, succ := range m.Successors(state) {
			v, err := eval(m, succ, g.Operand)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, &EvaluationError{Msg: fmt.Sprintf("ill-formed formula node %T", f)}
	}
}

// Checker bundles the parse/evaluate/display operations behind one value so
// the editor can depend on a capability instead of this package directly.
type Checker struct{}

func (Checker) Parse(text string) (Formula, error) { return Parse(text) }

func (Checker) Evaluate(m *kripke.Model, state int, f Formula) (bool, error) {
	return Evaluate(m, state, f)
}

func (Checker) Variables(text string) []string { return Variables(text) }

func (Checker) DisplayForm(text string) string { return DisplayForm(text) }

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package modal parses and evaluates formulas of propositional modal logic
// (system K) against a kripke.Model. ASCII input syntax:
//
//	~A        negation
//	A & B     conjunction
//	A | B     disjunction
//	A -> B    implication (right-associative)
//	A <-> B   biconditional
//	[]A       necessity (box)
//	<>A       possibility (diamond)
//
// Precedence, tightest first: unary (~, [], <>), &, |, ->, <->.
package modal

import "fmt"

// Formula is a parsed modal formula.
type Formula interface {
	String() string
}

// Atom is a propositional variable.
type Atom struct {
	Name string
}

func (a Atom) String() string { return a.Name }

// Not is ¬A.
type Not struct {
	Operand Formula
}

func (n Not) String() string { return fmt.Sprintf("¬%s", n.Operand) }

// And is A ∧ B.
type And struct {
	Left, Right Formula
}

func (a And) String() string { return fmt.Sprintf("(%s ∧ %s)", a.Left, a.Right) }

// Or is A ∨ B.
type Or struct {
	Left, Right Formula
}

func (o Or) String() string { return fmt.Sprintf("(%s ∨ %s)", o.Left, o.Right) }

// Implies is A → B.
type Implies struct {
	Left, Right Formula
}

func (i Implies) String() string { return fmt.Sprintf("(%s → %s)", i.Left, i.Right) }

// Iff is A ↔ B.
type Iff struct {
	Left, Right Formula
}

func (i Iff) String() string { return fmt.Sprintf("(%s ↔ %s)", i.Left, i.Right) }

// Box is □A, true at a state when A holds at every accessible state.
type Box struct {
	Operand Formula
}

func (b Box) String() string { return fmt.Sprintf("□%s", b.Operand) }

// Diamond is ◇A, true at a state when A holds at some accessible state.
type Diamond struct {
	Operand Formula
}

func (d Diamond) String() string { return fmt.Sprintf("◇%s", d.Operand) }

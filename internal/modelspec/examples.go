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
	"sort"
)

// Builtin example models, available from the CLI and the UI's examples menu.
var examples = map[string]*Document{
	"chain": {
		Name:     "chain",
		Vars:     []string{"p", "q"},
		VarCount: 2,
		States: []StateSpec{
			{ID: 0, X: 160, Y: 240, Vals: []bool{false, false}},
			{ID: 1, X: 360, Y: 240, Vals: []bool{true, false}},
		},
		Links: []LinkSpec{
			{Source: 0, Target: 1, Right: true},
		},
	},
	"reflexive-triangle": {
		Name:     "reflexive-triangle",
		Vars:     []string{"p", "q"},
		VarCount: 2,
		States: []StateSpec{
			{ID: 0, X: 260, Y: 140, Vals: []bool{true, false}, Reflexive: true},
			{ID: 1, X: 160, Y: 320, Vals: []bool{false, true}, Reflexive: true},
			{ID: 2, X: 360, Y: 320, Vals: []bool{true, true}, Reflexive: true},
		},
		Links: []LinkSpec{
			{Source: 0, Target: 1, Left: true, Right: true},
			{Source: 1, Target: 2, Left: true, Right: true},
			{Source: 0, Target: 2, Left: true, Right: true},
		},
	},
	"dead-end": {
		Name:     "dead-end",
		Vars:     []string{"p"},
		VarCount: 1,
		States: []StateSpec{
			{ID: 0, X: 160, Y: 240, Vals: []bool{true}},
			{ID: 1, X: 360, Y: 240, Vals: []bool{false}},
		},
		Links: []LinkSpec{
			{Source: 0, Target: 1, Right: true},
		},
	},
}

// ExampleNames lists the builtin examples in stable order.
func ExampleNames() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Example returns a copy of the named builtin example.
func Example(name string) (*Document, error) {
	d, ok := examples[name]
	if !ok {
		return nil, fmt.Errorf("unknown example %q (have %v)", name, ExampleNames())
	}
	cp := *d
	cp.States = append([]StateSpec(nil), d.States...)
	cp.Links = append([]LinkSpec(nil), d.Links...)
	return &cp, nil
}

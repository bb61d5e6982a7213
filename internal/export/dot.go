/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/silky/modallogic/internal/kripke"
)

// WriteDOT renders the model as Graphviz DOT. Nodes carry the true
// propositions of their state; the accessibility relation comes straight
// from the model, so DOT needs no view. varCount limits the labeled
// variables; 0 means all.
func WriteDOT(m *kripke.Model, varCount int) string {
	if varCount <= 0 || varCount > len(m.Vars) {
		varCount = len(m.Vars)
	}
	var sb strings.Builder
	sb.WriteString("digraph KripkeModel {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n\n")

	for id := 0; id < m.NumStates(); id++ {
		if !m.Live(id) {
			continue
		}
		name := StateName(id)
		var labels []string
		vals := m.Valuation(id)
		for i := 0; i < varCount && i < len(vals); i++ {
			if vals[i] {
				labels = append(labels, m.Vars[i])
			}
		}
		if len(labels) > 0 {
			fmt.Fprintf(&sb, "  %q [label=\"%s\\n{%s}\"];\n", name, name, strings.Join(labels, ", "))
		} else {
			fmt.Fprintf(&sb, "  %q [label=%q];\n", name, name)
		}
	}
	sb.WriteString("\n")
	for id := 0; id < m.NumStates(); id++ {
		if !m.Live(id) {
			continue
		}
		for _, to := range m.Successors(id) {
			fmt.Fprintf(&sb, "  %q -> %q;\n", StateName(id), StateName(to))
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// ExportDOT writes the DOT rendition to a file.
func ExportDOT(m *kripke.Model, varCount int, outPath string) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(WriteDOT(m, varCount)), 0o644); err != nil {
		return fmt.Errorf("write dot: %w", err)
	}
	return nil
}

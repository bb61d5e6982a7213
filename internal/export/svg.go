/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
)

// WriteSVG renders the model as an SVG document.
func WriteSVG(m *kripke.Model, v *graph.View, opt Options) ([]byte, error) {
	d := buildDiagram(m, v, opt)
	o := d.opt

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%g\" height=\"%g\" viewBox=\"0 0 %g %g\">\n", d.width, d.height, d.width, d.height)
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"#ffffff\"/>\n", d.width, d.height)

	ls := svgColor(o.LinkStroke)
	for _, e := range d.edges {
		wf("  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"1.5\"/>\n", e.from.X, e.from.Y, e.to.X, e.to.Y, ls)
		if e.headAtTo {
			p1, p2 := arrowhead(e.from, e.to, 8)
			wf("  <polygon points=\"%g,%g %g,%g %g,%g\" fill=\"%s\"/>\n", e.to.X, e.to.Y, p1.X, p1.Y, p2.X, p2.Y, ls)
		}
		if e.headAtFrom {
			p1, p2 := arrowhead(e.to, e.from, 8)
			wf("  <polygon points=\"%g,%g %g,%g %g,%g\" fill=\"%s\"/>\n", e.from.X, e.from.Y, p1.X, p1.Y, p2.X, p2.Y, ls)
		}
	}

	ns := svgColor(o.NodeStroke)
	nf := svgColor(o.NodeFill)
	lc := svgColor(o.LabelColor)
	for _, n := range d.nodes {
		if n.reflexive {
			c, r := loopArc(n.center, o.NodeRadius)
			wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\"/>\n", c.X, c.Y, r, ls)
		}
		wf("  <circle cx=\"%g\" cy=\"%g\" r=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1.5\"/>\n", n.center.X, n.center.Y, o.NodeRadius, nf, ns)
		wf("  <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"12\" fill=\"%s\">%s</text>\n", n.center.X, n.center.Y+4, lc, escText(n.label))
		if n.vals != "" {
			wf("  <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"11\" fill=\"%s\">%s</text>\n", n.center.X, n.center.Y+o.NodeRadius+14, lc, escText(n.vals))
		}
	}

	wf("</svg>\n")
	if werr != nil {
		return nil, fmt.Errorf("build svg: %w", werr)
	}
	return buf.Bytes(), nil
}

// ExportSVG writes the model diagram to an SVG file.
func ExportSVG(m *kripke.Model, v *graph.View, outPath string, opt Options) error {
	data, err := WriteSVG(m, v, opt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

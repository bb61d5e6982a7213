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

	"github.com/jung-kurt/gofpdf"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
)

// ExportPDF writes the model diagram as a single-page PDF at outPath.
// Model coordinates map 1:1 to points; built-in Helvetica keeps the labels
// vector without font embedding, so negations render as "~".
func ExportPDF(m *kripke.Model, v *graph.View, title, outPath string, opt Options) error {
	d := buildDiagram(m, v, opt)
	o := d.opt

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: d.width, Ht: d.height},
		OrientationStr: "",
	})
	pdf.SetTitle(title, true)
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: d.width, Ht: d.height})

	setDrawColor(pdf, o.LinkStroke)
	setFillColor(pdf, o.LinkStroke)
	pdf.SetLineWidth(1.2)
	for _, e := range d.edges {
		pdf.Line(e.from.X, e.from.Y, e.to.X, e.to.Y)
		if e.headAtTo {
			p1, p2 := arrowhead(e.from, e.to, 8)
			pdf.Polygon([]gofpdf.PointType{
				{X: e.to.X, Y: e.to.Y}, {X: p1.X, Y: p1.Y}, {X: p2.X, Y: p2.Y},
			}, "F")
		}
		if e.headAtFrom {
			p1, p2 := arrowhead(e.to, e.from, 8)
			pdf.Polygon([]gofpdf.PointType{
				{X: e.from.X, Y: e.from.Y}, {X: p1.X, Y: p1.Y}, {X: p2.X, Y: p2.Y},
			}, "F")
		}
	}

	for _, n := range d.nodes {
		if n.reflexive {
			setDrawColor(pdf, o.LinkStroke)
			pdf.SetLineWidth(1.2)
			c, r := loopArc(n.center, o.NodeRadius)
			pdf.Ellipse(c.X, c.Y, r, r, 0, "D")
		}
		setDrawColor(pdf, o.NodeStroke)
		setFillColor(pdf, o.NodeFill)
		pdf.SetLineWidth(1.2)
		pdf.Ellipse(n.center.X, n.center.Y, o.NodeRadius, o.NodeRadius, 0, "FD")

		setTextColor(pdf, o.LabelColor)
		pdf.SetFont("Helvetica", "", 12)
		centerText(pdf, n.label, n.center.X, n.center.Y+4)
		if n.vals != "" {
			pdf.SetFont("Helvetica", "", 10)
			centerText(pdf, asciiLabel(n.vals), n.center.X, n.center.Y+o.NodeRadius+14)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func asciiLabel(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '¬' {
			r = '~'
		}
		out = append(out, r)
	}
	return string(out)
}

func centerText(pdf *gofpdf.Fpdf, s string, x, y float64) {
	w := pdf.GetStringWidth(s)
	pdf.Text(x-w/2, y, s)
}

func setDrawColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func setFillColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

func setTextColor(pdf *gofpdf.Fpdf, c Color) {
	pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
	"github.com/silky/modallogic/internal/layout"
)

// WritePNG renders the model as a raster image. Options.Scale multiplies the
// model coordinates into pixels.
func WritePNG(m *kripke.Model, v *graph.View, opt Options) (*image.RGBA, error) {
	d := buildDiagram(m, v, opt)
	o := d.opt
	s := o.Scale

	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(d.width*s)), int(math.Ceil(d.height*s))))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	ls := toRGBA(o.LinkStroke)
	for _, e := range d.edges {
		strokeLine(img, e.from.X*s, e.from.Y*s, e.to.X*s, e.to.Y*s, ls)
		if e.headAtTo {
			p1, p2 := arrowhead(e.from, e.to, 8)
			strokeLine(img, p1.X*s, p1.Y*s, e.to.X*s, e.to.Y*s, ls)
			strokeLine(img, p2.X*s, p2.Y*s, e.to.X*s, e.to.Y*s, ls)
		}
		if e.headAtFrom {
			p1, p2 := arrowhead(e.to, e.from, 8)
			strokeLine(img, p1.X*s, p1.Y*s, e.from.X*s, e.from.Y*s, ls)
			strokeLine(img, p2.X*s, p2.Y*s, e.from.X*s, e.from.Y*s, ls)
		}
	}

	ns := toRGBA(o.NodeStroke)
	nf := toRGBA(o.NodeFill)
	lc := toRGBA(o.LabelColor)
	for _, n := range d.nodes {
		if n.reflexive {
			c, r := loopArc(n.center, o.NodeRadius)
			strokeCircle(img, c.X*s, c.Y*s, r*s, ls)
		}
		fillCircle(img, n.center.X*s, n.center.Y*s, o.NodeRadius*s, nf)
		strokeCircle(img, n.center.X*s, n.center.Y*s, o.NodeRadius*s, ns)
		drawLabel(img, n.label, n.center.X*s, n.center.Y*s+4, lc)
		if n.vals != "" {
			drawLabel(img, n.vals, n.center.X*s, (n.center.Y+o.NodeRadius+14)*s, lc)
		}
	}
	return img, nil
}

// ExportPNG writes the model diagram to a PNG file.
func ExportPNG(m *kripke.Model, v *graph.View, outPath string, opt Options) error {
	img, err := WritePNG(m, v, opt)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// drawLabel renders centered text with the fixed 7x13 face. The face has no
// glyphs outside basic latin, so ¬ falls back to a tilde.
func drawLabel(img *image.RGBA, text string, cx, cy float64, col color.RGBA) {
	ascii := make([]rune, 0, len(text))
	for _, r := range text {
		if r == '¬' {
			r = '~'
		}
		if r > 127 {
			r = '?'
		}
		ascii = append(ascii, r)
	}
	face := basicfont.Face7x13
	w := font.MeasureString(face, string(ascii)).Round()
	dr := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: col},
		Face: face,
		Dot:  fixed.P(int(cx)-w/2, int(cy)),
	}
	dr.DrawString(string(ascii))
}

// strokeLine draws a 1px line by sampling along its length.
func strokeLine(img *image.RGBA, x0, y0, x1, y1 float64, col color.RGBA) {
	steps := int(math.Hypot(x1-x0, y1-y0)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(x0 + (x1-x0)*t))
		y := int(math.Round(y0 + (y1-y0)*t))
		img.SetRGBA(x, y, col)
	}
}

func strokeCircle(img *image.RGBA, cx, cy, r float64, col color.RGBA) {
	steps := int(2*math.Pi*r) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		sin, cos := math.Sincos(a)
		img.SetRGBA(int(math.Round(cx+r*cos)), int(math.Round(cy+r*sin)), col)
	}
}

func fillCircle(img *image.RGBA, cx, cy, r float64, col color.RGBA) {
	x0, x1 := int(cx-r), int(cx+r)
	y0, y1 := int(cy-r), int(cy+r)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if layout.Dist(layout.Pt{X: float64(x), Y: float64(y)}, layout.Pt{X: cx, Y: cy}) <= r {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a model as a diagram. All exporters share the same
// layout math: nodes are circles at their editor positions, links are lines
// trimmed to the circle borders with arrowheads per direction, reflexive
// states carry a small loop above the node. Each state is labeled with its
// name and the variables true there.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
	"github.com/silky/modallogic/internal/layout"
)

// Color is an opaque RGB triple.
type Color struct {
	R, G, B uint8
}

// Options controls diagram rendering. Zero values get reasonable defaults.
//
//nolint:revive // keep options grouped and explicit for clarity
type Options struct {
	NodeRadius float64 // circle radius in model units
	Margin     float64 // padding around the layout bounds
	Scale      float64 // raster scale (PNG only)
	NodeStroke Color
	NodeFill   Color
	LinkStroke Color
	LabelColor Color
	FullLabels bool // list every active variable, negated where false; default labels true variables only
	VarCount   int  // active variables shown in labels; 0 means all
}

func (o Options) withDefaults() Options {
	if o.NodeRadius <= 0 {
		o.NodeRadius = 18
	}
	if o.Margin <= 0 {
		o.Margin = 40
	}
	if o.Scale <= 0 {
		o.Scale = 2
	}
	if o.NodeFill == (Color{}) {
		o.NodeFill = Color{R: 255, G: 255, B: 255}
	}
	// black defaults for strokes and labels are the zero value
	return o
}

// diagram is the resolved geometry every exporter draws from.
type diagram struct {
	opt    Options
	nodes  []diagNode
	edges  []diagEdge
	width  float64
	height float64
}

type diagNode struct {
	id        int
	center    layout.Pt
	reflexive bool
	label     string // state name
	vals      string // variable line under the name
}

type diagEdge struct {
	from, to   layout.Pt // trimmed endpoints, from at Source side
	headAtTo   bool      // arrowhead at the to end (RightArrow)
	headAtFrom bool      // arrowhead at the from end (LeftArrow)
}

// buildDiagram translates a model/view pair into drawable geometry with the
// origin shifted so everything is inside [0,width]x[0,height].
func buildDiagram(m *kripke.Model, v *graph.View, opt Options) *diagram {
	opt = opt.withDefaults()
	varCount := opt.VarCount
	if varCount <= 0 || varCount > len(m.Vars) {
		varCount = len(m.Vars)
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range v.Nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X)
		maxY = math.Max(maxY, n.Y)
	}
	if len(v.Nodes) == 0 {
		minX, minY, maxX, maxY = 0, 0, 0, 0
	}
	// loop arc above reflexive nodes needs extra headroom
	pad := opt.Margin + opt.NodeRadius*2
	dx := pad - minX
	dy := pad - minY

	d := &diagram{
		opt:    opt,
		width:  maxX - minX + 2*pad,
		height: maxY - minY + 2*pad,
	}

	centers := make(map[int]layout.Pt, len(v.Nodes))
	for _, n := range v.Nodes {
		c := layout.Pt{X: n.X + dx, Y: n.Y + dy}
		centers[n.ID] = c
		d.nodes = append(d.nodes, diagNode{
			id:        n.ID,
			center:    c,
			reflexive: n.Reflexive,
			label:     StateName(n.ID),
			vals:      valuationLabel(m.Vars[:varCount], n.Vals, !opt.FullLabels),
		})
	}
	for _, l := range v.Links {
		from, ok1 := centers[l.Source]
		to, ok2 := centers[l.Target]
		if !ok1 || !ok2 {
			continue
		}
		ux, uy := unit(from, to)
		d.edges = append(d.edges, diagEdge{
			from:       layout.Pt{X: from.X + ux*opt.NodeRadius, Y: from.Y + uy*opt.NodeRadius},
			to:         layout.Pt{X: to.X - ux*opt.NodeRadius, Y: to.Y - uy*opt.NodeRadius},
			headAtTo:   l.RightArrow,
			headAtFrom: l.LeftArrow,
		})
	}
	return d
}

// StateName is the display name of a state id.
func StateName(id int) string { return fmt.Sprintf("w%d", id) }

// valuationLabel renders the variable line of a node label. With trueOnly it
// lists just the variables true at the state; otherwise every active
// variable appears, negated where false.
func valuationLabel(vars []string, vals []bool, trueOnly bool) string {
	var parts []string
	for i, name := range vars {
		val := i < len(vals) && vals[i]
		switch {
		case val:
			parts = append(parts, name)
		case !trueOnly:
			parts = append(parts, "¬"+name)
		}
	}
	return strings.Join(parts, ", ")
}

func unit(from, to layout.Pt) (ux, uy float64) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return 1, 0
	}
	return dx / dist, dy / dist
}

// arrowhead returns the two barb points for a head ending at tip, coming in
// along the direction from tail to tip.
func arrowhead(tail, tip layout.Pt, size float64) (layout.Pt, layout.Pt) {
	ux, uy := unit(tail, tip)
	// rotate the back-vector by +-25 degrees
	sin, cos := math.Sincos(25 * math.Pi / 180)
	bx, by := -ux, -uy
	p1 := layout.Pt{X: tip.X + size*(bx*cos-by*sin), Y: tip.Y + size*(bx*sin+by*cos)}
	p2 := layout.Pt{X: tip.X + size*(bx*cos+by*sin), Y: tip.Y + size*(-bx*sin+by*cos)}
	return p1, p2
}

// loopArc places the reflexive loop circle above a node: returns its center
// and radius.
func loopArc(center layout.Pt, nodeRadius float64) (layout.Pt, float64) {
	r := nodeRadius * 0.6
	return layout.Pt{X: center.X, Y: center.Y - nodeRadius - r*0.8}, r
}

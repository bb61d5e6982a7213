/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package layout runs the force-directed simulation for the graph view and
// provides the geometric hit-testing renderers use to map pointer positions
// to nodes and links. It only ever touches node positions, never logical
// fields, so a simulation tick may interleave freely with editor operations.
package layout

import "math"

// Pt is a point in canvas coordinates.
type Pt struct {
	X, Y float64
}

// Dist returns the euclidean distance between two points.
func Dist(a, b Pt) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// SegmentDist returns the distance from p to the segment a-b.
func SegmentDist(p, a, b Pt) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return Dist(p, a)
	}
	// projection parameter clamped to the segment
	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Dist(p, Pt{X: a.X + t*dx, Y: a.Y + t*dy})
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import (
	"math"

	"github.com/silky/modallogic/internal/graph"
)

// Options tunes the force simulation.
type Options struct {
	Repulsion       float64 // pairwise node repulsion strength
	SpringLength    float64 // rest length of link springs
	SpringStiffness float64
	Gravity         float64 // pull toward Center
	Damping         float64 // velocity decay per tick, 0..1
	Center          Pt
}

// DefaultOptions returns values that settle small graphs quickly without
// jitter.
func DefaultOptions() Options {
	return Options{
		Repulsion:       6000,
		SpringLength:    120,
		SpringStiffness: 0.06,
		Gravity:         0.02,
		Damping:         0.85,
	}
}

// Engine advances node positions of a View. Velocities are tracked per node
// id so nodes keep momentum across topology edits.
type Engine struct {
	opts   Options
	pinned int // node id exempt from forces (being dragged), -1 if none
	vx, vy map[int]float64
}

// NewEngine creates an engine over the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts, pinned: -1, vx: map[int]float64{}, vy: map[int]float64{}}
}

// Pin exempts a node from forces while it is dragged; Pin(-1) releases.
func (e *Engine) Pin(id int) { e.pinned = id }

// Tick advances the simulation by dt seconds. Only X/Y of the nodes are
// written.
func (e *Engine) Tick(v *graph.View, dt float64) {
	nodes := v.Nodes
	// pairwise repulsion
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			dx := nodes[j].X - nodes[i].X
			dy := nodes[j].Y - nodes[i].Y
			dist2 := dx*dx + dy*dy + 0.01
			force := e.opts.Repulsion / dist2
			inv := 1.0 / math.Sqrt(dist2)
			fx := force * dx * inv
			fy := force * dy * inv
			e.vx[nodes[i].ID] -= fx
			e.vy[nodes[i].ID] -= fy
			e.vx[nodes[j].ID] += fx
			e.vy[nodes[j].ID] += fy
		}
	}
	// link springs
	for _, l := range v.Links {
		src := v.NodeByID(l.Source)
		dst := v.NodeByID(l.Target)
		if src == nil || dst == nil {
			continue
		}
		dx := dst.X - src.X
		dy := dst.Y - src.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}
		diff := dist - e.opts.SpringLength
		fx := e.opts.SpringStiffness * diff * dx / dist
		fy := e.opts.SpringStiffness * diff * dy / dist
		e.vx[src.ID] += fx
		e.vy[src.ID] += fy
		e.vx[dst.ID] -= fx
		e.vy[dst.ID] -= fy
	}
	// centering gravity
	if e.opts.Gravity > 0 {
		for _, n := range nodes {
			e.vx[n.ID] -= (n.X - e.opts.Center.X) * e.opts.Gravity
			e.vy[n.ID] -= (n.Y - e.opts.Center.Y) * e.opts.Gravity
		}
	}
	// integrate
	for _, n := range nodes {
		if n.ID == e.pinned {
			e.vx[n.ID] = 0
			e.vy[n.ID] = 0
			continue
		}
		e.vx[n.ID] *= e.opts.Damping
		e.vy[n.ID] *= e.opts.Damping
		n.X += e.vx[n.ID] * dt
		n.Y += e.vy[n.ID] * dt
	}
}

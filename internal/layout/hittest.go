/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package layout

import "github.com/silky/modallogic/internal/graph"

// NodeRadius is the visual radius used for hit-testing and export.
const NodeRadius = 18.0

// LinkTolerance is the pick distance for links.
const LinkTolerance = 6.0

// PickNode returns the top-most node under p, or nil. Later nodes draw on
// top, so the scan runs back to front.
func PickNode(v *graph.View, p Pt) *graph.Node {
	for i := len(v.Nodes) - 1; i >= 0; i-- {
		n := v.Nodes[i]
		if Dist(p, Pt{X: n.X, Y: n.Y}) <= NodeRadius {
			return n
		}
	}
	return nil
}

// PickLink returns the link whose segment passes within LinkTolerance of p,
// skipping hits that PickNode would claim first.
func PickLink(v *graph.View, p Pt) *graph.Link {
	if PickNode(v, p) != nil {
		return nil
	}
	for i := len(v.Links) - 1; i >= 0; i-- {
		l := v.Links[i]
		src := v.NodeByID(l.Source)
		dst := v.NodeByID(l.Target)
		if src == nil || dst == nil {
			continue
		}
		if SegmentDist(p, Pt{X: src.X, Y: src.Y}, Pt{X: dst.X, Y: dst.Y}) <= LinkTolerance {
			return l
		}
	}
	return nil
}

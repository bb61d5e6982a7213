//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the Fyne-based UI components. They are gated behind the
// "fyne" build tag so CI (which is headless) does not need Fyne or a display.
// To run locally:
//
//	go test -tags fyne ./internal/ui
//
// Ensure you have the Fyne dependencies installed and a working OS driver.
package ui

import (
	"testing"

	"fyne.io/fyne/v2"

	"github.com/silky/modallogic/internal/layout"
)

func almostEqual(a, b, eps float64) bool {
	if a > b {
		return a-b <= eps
	}
	return b-a <= eps
}

func TestGraphCanvas_Defaults(t *testing.T) {
	gc := NewGraphCanvas(layout.NewEngine(layout.DefaultOptions()))
	if gc.zoom != 1 {
		t.Fatalf("expected default zoom 1, got %v", gc.zoom)
	}
	sz := gc.PreferredSize()
	if sz.Width != 480 || sz.Height != 400 {
		t.Fatalf("unexpected PreferredSize: %v", sz)
	}
}

func TestGraphCanvas_CoordinateRoundTrip(t *testing.T) {
	gc := NewGraphCanvas(layout.NewEngine(layout.DefaultOptions()))
	gc.Resize(fyne.NewSize(600, 400))
	gc.zoom = 1.5
	gc.offsetX = 20
	gc.offsetY = -10

	p := layout.Pt{X: 42, Y: -17}
	got := gc.toModel(gc.toScreen(p))
	if !almostEqual(got.X, p.X, 0.01) || !almostEqual(got.Y, p.Y, 0.01) {
		t.Fatalf("round trip moved point: %v -> %v", p, got)
	}
	// origin maps to widget center plus pan offset
	c := gc.toScreen(layout.Pt{})
	if !almostEqual(float64(c.X), 320, 0.01) || !almostEqual(float64(c.Y), 190, 0.01) {
		t.Fatalf("unexpected origin mapping: %v", c)
	}
}

func TestTrimSegment(t *testing.T) {
	a := layout.Pt{X: 0, Y: 0}
	b := layout.Pt{X: 100, Y: 0}
	ta, tb := trimSegment(a, b, 18)
	if !almostEqual(ta.X, 18, 0.01) || !almostEqual(tb.X, 82, 0.01) {
		t.Fatalf("unexpected trim: %v %v", ta, tb)
	}
	// too short to trim: endpoints untouched
	c := layout.Pt{X: 20, Y: 0}
	ta, tb = trimSegment(a, c, 18)
	if ta != a || tb != c {
		t.Fatalf("short segment should not be trimmed: %v %v", ta, tb)
	}
}

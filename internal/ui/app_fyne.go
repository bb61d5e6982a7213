//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/silky/modallogic/internal/config"
	"github.com/silky/modallogic/internal/crash"
	"github.com/silky/modallogic/internal/editor"
	"github.com/silky/modallogic/internal/export"
	"github.com/silky/modallogic/internal/graph"
	"github.com/silky/modallogic/internal/kripke"
	"github.com/silky/modallogic/internal/layout"
	applog "github.com/silky/modallogic/internal/log"
	"github.com/silky/modallogic/internal/modal"
	"github.com/silky/modallogic/internal/modelspec"
	"github.com/silky/modallogic/internal/version"
)

// Run starts the Fyne-based desktop UI. An optional model file path is opened
// immediately.
func Run(modelPath string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("file", modelPath))

	var ref *crash.ModelRef
	defer func() { crash.Recover(ref) }()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	fyneApp := app.NewWithID("modallogic")
	w := fyneApp.NewWindow("Modal Logic Playground")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 750)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")

	// Document state
	docPath := ""
	docName := "untitled"
	dirty := false

	updateTitle := func() {
		t := "Modal Logic Playground — " + docName
		if dirty {
			t += " *"
		}
		w.SetTitle(t)
	}

	opts := layout.DefaultOptions()
	if cfg.Editor.Repulsion > 0 {
		opts.Repulsion = cfg.Editor.Repulsion
	}
	if cfg.Editor.SpringLength > 0 {
		opts.SpringLength = cfg.Editor.SpringLength
	}
	if cfg.Editor.SpringStiffness > 0 {
		opts.SpringStiffness = cfg.Editor.SpringStiffness
	}
	if cfg.Editor.Gravity > 0 {
		opts.Gravity = cfg.Editor.Gravity
	}
	if cfg.Editor.Damping > 0 {
		opts.Damping = cfg.Editor.Damping
	}
	engine := layout.NewEngine(opts)

	gc := NewGraphCanvas(engine)
	session := editor.NewSession(kripke.New(cfg.Editor.Vars), &graph.View{}, modal.Checker{}, gc)
	gc.session = func() *editor.Session { return session }

	ref = &crash.ModelRef{
		Path: docPath,
		Snapshot: func() *modelspec.Document {
			if session == nil {
				return nil
			}
			return modelspec.Snapshot(docName, session.Model, session.View, session.VarCount())
		},
	}

	// Sidebar: mode, variables, valuation of the selected state, evaluation.
	var refreshSidebar func()

	markDirty := func() {
		if !dirty {
			dirty = true
			updateTitle()
		}
	}
	gc.onEdit = markDirty

	modeRadio := widget.NewRadioGroup([]string{"Edit", "Evaluate"}, nil)
	modeRadio.Horizontal = true
	modeRadio.OnChanged = func(sel string) {
		if sel == "Evaluate" {
			session.SetMode(editor.ModeEvaluate)
		} else {
			session.SetMode(editor.ModeEdit)
		}
		l.Info("mode switched", slog.String("mode", session.CurrentMode().String()))
		if refreshSidebar != nil {
			refreshSidebar()
		}
	}
	modeRadio.SetSelected("Edit")

	varOptions := make([]string, len(session.Model.Vars))
	for i := range varOptions {
		varOptions[i] = strconv.Itoa(i + 1)
	}
	varCountSelect := widget.NewSelect(varOptions, func(sel string) {
		n, err := strconv.Atoi(sel)
		if err != nil {
			return
		}
		if n != session.VarCount() {
			session.SetVarCount(n)
			markDirty()
			refreshSidebar()
		}
	})
	varCountSelect.SetSelected(strconv.Itoa(session.VarCount()))

	selectionLabel := widget.NewLabel("Nothing selected")
	valsBox := container.NewVBox()

	formulaEntry := widget.NewEntry()
	formulaEntry.SetPlaceHolder("e.g. []p -> <>q")
	resultLabel := widget.NewLabel("")
	resultLabel.Wrapping = fyne.TextWrapWord

	evaluate := func() {
		res, err := session.EvaluateFormula(formulaEntry.Text)
		if err != nil {
			var ve *editor.ValidationError
			var uv *editor.UnknownVariableError
			var pe *modal.ParseError
			switch {
			case errors.As(err, &ve):
				resultLabel.SetText(ve.Msg)
			case errors.As(err, &uv):
				resultLabel.SetText(fmt.Sprintf("Variable %s is not in the active set.", uv.Name))
			case errors.As(err, &pe):
				resultLabel.SetText("Parse error: " + pe.Error())
			default:
				resultLabel.SetText("Error: " + err.Error())
			}
			l.Info("evaluation rejected", slog.Any("err", err))
			return
		}
		verdict := "false"
		if res.Value {
			verdict = "true"
		}
		resultLabel.SetText(fmt.Sprintf("%s is %s at %s", res.Display, verdict, export.StateName(res.StateID)))
		l.Info("formula evaluated",
			slog.String("formula", formulaEntry.Text),
			slog.Int("state", res.StateID),
			slog.Bool("value", res.Value))
	}
	formulaEntry.OnSubmitted = func(string) { evaluate() }
	evalButton := widget.NewButton("Evaluate", evaluate)

	refreshSidebar = func() {
		valsBox.RemoveAll()
		node := session.SelectedNode()
		switch {
		case node != nil:
			selectionLabel.SetText("State " + export.StateName(node.ID))
			if session.CurrentMode() == editor.ModeEdit {
				for i, name := range session.ActiveVars() {
					i, node := i, node
					chk := widget.NewCheck(name, nil)
					chk.SetChecked(node.Vals[i])
					chk.OnChanged = func(v bool) {
						session.SetValuation(node, i, v)
						markDirty()
					}
					valsBox.Add(chk)
				}
			} else {
				// Read-only valuation summary while evaluating.
				parts := make([]string, 0, session.VarCount())
				for i, name := range session.ActiveVars() {
					if node.Vals[i] {
						parts = append(parts, name)
					} else {
						parts = append(parts, "¬"+name)
					}
				}
				valsBox.Add(widget.NewLabel(strings.Join(parts, ", ")))
			}
		case session.SelectedLink() != nil:
			lnk := session.SelectedLink()
			selectionLabel.SetText(fmt.Sprintf("Link %s — %s", export.StateName(lnk.Source), export.StateName(lnk.Target)))
			valsBox.Add(widget.NewLabel("B: both directions\nL: left only\nR: right only\nDelete: remove"))
		default:
			selectionLabel.SetText("Nothing selected")
		}
		valsBox.Refresh()
	}
	gc.onRedraw = refreshSidebar

	sidebar := container.NewVBox(
		widget.NewLabel("Mode"),
		modeRadio,
		widget.NewSeparator(),
		widget.NewLabel("Active variables"),
		varCountSelect,
		widget.NewSeparator(),
		selectionLabel,
		valsBox,
		widget.NewSeparator(),
		widget.NewLabel("Formula"),
		formulaEntry,
		evalButton,
		resultLabel,
	)

	// File handling
	installDocument := func(doc *modelspec.Document, path string) {
		m, v, err := doc.Build()
		if err != nil {
			l.Error("document rejected", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		session = editor.NewSession(m, v, modal.Checker{}, gc)
		if doc.VarCount > 0 {
			session.SetVarCount(doc.VarCount)
		}
		docPath = path
		if doc.Name != "" {
			docName = doc.Name
		} else if path != "" {
			docName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		} else {
			docName = "untitled"
		}
		dirty = false
		ref.Path = docPath
		modeRadio.SetSelected("Edit")
		varOptions = varOptions[:0]
		for i := range session.Model.Vars {
			varOptions = append(varOptions, strconv.Itoa(i+1))
		}
		varCountSelect.Options = varOptions
		varCountSelect.SetSelected(strconv.Itoa(session.VarCount()))
		resultLabel.SetText("")
		updateTitle()
		refreshSidebar()
		gc.Refresh()
		status.SetText("Opened " + docName)
	}

	newDocument := func() {
		installDocument(&modelspec.Document{Name: "untitled", Vars: cfg.Editor.Vars, VarCount: len(cfg.Editor.Vars)}, "")
		status.SetText("New model")
	}

	openPath := func(path string) {
		doc, err := modelspec.Load(path)
		if err != nil {
			l.Error("open failed", slog.String("path", path), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		l.Info("model opened", slog.String("path", path))
		installDocument(doc, path)
	}

	saveTo := func(path string) {
		doc := modelspec.Snapshot(docName, session.Model, session.View, session.VarCount())
		if err := modelspec.Save(path, doc); err != nil {
			l.Error("save failed", slog.String("path", path), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		docPath = path
		ref.Path = path
		dirty = false
		updateTitle()
		status.SetText("Saved " + filepath.Base(path))
		l.Info("model saved", slog.String("path", path))
	}

	modelFilter := fstorage.NewExtensionFileFilter([]string{".json", ".yaml", ".yml"})

	showOpen := func() {
		d := dialog.NewFileOpen(func(rd fyne.URIReadCloser, err error) {
			if err != nil || rd == nil {
				return
			}
			path := rd.URI().Path()
			_ = rd.Close()
			openPath(path)
		}, w)
		d.SetFilter(modelFilter)
		d.Show()
	}

	showSaveAs := func() {
		d := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
			if err != nil || wr == nil {
				return
			}
			path := wr.URI().Path()
			_ = wr.Close()
			if filepath.Ext(path) == "" {
				path += ".json"
			}
			saveTo(path)
		}, w)
		d.SetFilter(modelFilter)
		d.SetFileName(docName + ".json")
		d.Show()
	}

	save := func() {
		if docPath == "" {
			showSaveAs()
			return
		}
		saveTo(docPath)
	}

	exportAs := func(ext string) {
		d := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
			if err != nil || wr == nil {
				return
			}
			path := wr.URI().Path()
			_ = wr.Close()
			if !strings.EqualFold(filepath.Ext(path), ext) {
				path += ext
			}
			opt := export.Options{VarCount: session.VarCount()}
			var eerr error
			switch ext {
			case ".svg":
				eerr = export.ExportSVG(session.Model, session.View, path, opt)
			case ".png":
				eerr = export.ExportPNG(session.Model, session.View, path, opt)
			case ".pdf":
				eerr = export.ExportPDF(session.Model, session.View, docName, path, opt)
			case ".dot":
				eerr = export.ExportDOT(session.Model, session.VarCount(), path)
			}
			if eerr != nil {
				l.Error("export failed", slog.String("path", path), slog.Any("err", eerr))
				dialog.ShowError(eerr, w)
				return
			}
			status.SetText("Exported " + filepath.Base(path))
			l.Info("model exported", slog.String("path", path))
		}, w)
		d.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
		d.SetFileName(docName + ext)
		d.Show()
	}

	exampleItems := []*fyne.MenuItem{}
	for _, name := range modelspec.ExampleNames() {
		name := name
		exampleItems = append(exampleItems, fyne.NewMenuItem(name, func() {
			doc, err := modelspec.Example(name)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			installDocument(doc, "")
			status.SetText("Loaded example " + name)
		}))
	}

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New", newDocument),
		fyne.NewMenuItem("Open…", showOpen),
		fyne.NewMenuItem("Save", save),
		fyne.NewMenuItem("Save As…", showSaveAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export SVG…", func() { exportAs(".svg") }),
		fyne.NewMenuItem("Export PNG…", func() { exportAs(".png") }),
		fyne.NewMenuItem("Export PDF…", func() { exportAs(".pdf") }),
		fyne.NewMenuItem("Export DOT…", func() { exportAs(".dot") }),
	)
	examplesMenu := fyne.NewMenu("Examples", exampleItems...)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About", version.String(), w)
		}),
	)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, examplesMenu, helpMenu))

	w.SetContent(container.NewBorder(nil, status, nil, container.NewVScroll(sidebar), gc))
	updateTitle()

	if modelPath != "" {
		openPath(modelPath)
	}

	// Force layout loop: keeps node positions settling between edits.
	stop := make(chan struct{})
	go func() {
		t := time.NewTicker(33 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				fyne.Do(func() {
					engine.Tick(session.View, 0.033)
					gc.Refresh()
				})
			}
		}
	}()
	w.SetOnClosed(func() {
		close(stop)
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		l.Info("UI closed")
	})

	w.Canvas().Focus(gc)
	w.ShowAndRun()
	return nil
}

// GraphCanvas renders the model graph and translates pointer and keyboard
// events into editor session calls. Model coordinates have the origin at the
// widget center; zoom and pan happen in screen space.
type GraphCanvas struct {
	widget.BaseWidget

	session func() *editor.Session
	engine  *layout.Engine

	zoom             float32
	offsetX, offsetY float32

	freeDrag bool // evaluate mode: drags reposition nodes directly

	// in-flight gesture state
	repositioning *graph.Node
	linkDragging  bool
	panning       bool
	lastDrag      layout.Pt

	onRedraw func() // selection or content changed; refresh side panels
	onEdit   func() // a gesture mutated the model
}

// NewGraphCanvas creates the canvas. The session accessor is set by the
// caller once the session exists.
func NewGraphCanvas(engine *layout.Engine) *GraphCanvas {
	gc := &GraphCanvas{engine: engine, zoom: 1}
	gc.ExtendBaseWidget(gc)
	return gc
}

// Redraw implements editor.Renderer.
func (gc *GraphCanvas) Redraw() {
	gc.Refresh()
	if gc.onRedraw != nil {
		gc.onRedraw()
	}
}

// SetFreeDrag implements editor.Renderer.
func (gc *GraphCanvas) SetFreeDrag(enabled bool) { gc.freeDrag = enabled }

func (gc *GraphCanvas) toScreen(p layout.Pt) fyne.Position {
	size := gc.Size()
	return fyne.NewPos(
		float32(p.X)*gc.zoom+size.Width/2+gc.offsetX,
		float32(p.Y)*gc.zoom+size.Height/2+gc.offsetY,
	)
}

func (gc *GraphCanvas) toModel(pos fyne.Position) layout.Pt {
	size := gc.Size()
	return layout.Pt{
		X: float64((pos.X - size.Width/2 - gc.offsetX) / gc.zoom),
		Y: float64((pos.Y - size.Height/2 - gc.offsetY) / gc.zoom),
	}
}

func (gc *GraphCanvas) hitAt(p layout.Pt) editor.Hit {
	s := gc.session()
	if n := layout.PickNode(s.View, p); n != nil {
		return editor.Hit{Node: n}
	}
	if l := layout.PickLink(s.View, p); l != nil {
		return editor.Hit{Link: l}
	}
	return editor.Hit{}
}

// Tapped handles a plain click: press and release at the same spot.
func (gc *GraphCanvas) Tapped(e *fyne.PointEvent) {
	if c := fyne.CurrentApp().Driver().CanvasForObject(gc); c != nil {
		c.Focus(gc)
	}
	p := gc.toModel(e.Position)
	hit := gc.hitAt(p)
	s := gc.session()
	s.PointerDown(p, hit)
	s.PointerUp(hit)
	if gc.onEdit != nil && hit.Node == nil && hit.Link == nil && s.CurrentMode() == editor.ModeEdit {
		gc.onEdit() // empty-canvas click created a node
	}
}

// Dragged routes a drag to one of three gestures: free node repositioning in
// evaluate mode, a link drag from a node in edit mode, or canvas panning.
func (gc *GraphCanvas) Dragged(e *fyne.DragEvent) {
	s := gc.session()
	if gc.repositioning == nil && !gc.linkDragging && !gc.panning {
		start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
		p0 := gc.toModel(start)
		hit := gc.hitAt(p0)
		switch {
		case hit.Node != nil && gc.freeDrag:
			gc.repositioning = hit.Node
			gc.engine.Pin(hit.Node.ID)
		case hit.Node != nil && s.CurrentMode() == editor.ModeEdit:
			gc.linkDragging = true
			s.PointerDown(p0, hit)
		default:
			gc.panning = true
		}
	}
	p := gc.toModel(e.Position)
	gc.lastDrag = p
	switch {
	case gc.repositioning != nil:
		gc.repositioning.X = p.X
		gc.repositioning.Y = p.Y
		gc.Refresh()
	case gc.linkDragging:
		s.PointerMove(p)
	case gc.panning:
		gc.offsetX += e.Dragged.DX
		gc.offsetY += e.Dragged.DY
		gc.Refresh()
	}
}

// DragEnd completes the in-flight gesture.
func (gc *GraphCanvas) DragEnd() {
	s := gc.session()
	switch {
	case gc.repositioning != nil:
		gc.engine.Pin(-1)
		gc.repositioning = nil
	case gc.linkDragging:
		gc.linkDragging = false
		hit := gc.hitAt(gc.lastDrag)
		before := s.SelectedLink()
		s.PointerUp(hit)
		if gc.onEdit != nil && s.SelectedLink() != nil && s.SelectedLink() != before {
			gc.onEdit()
		}
	}
	gc.panning = false
}

// Scrolled zooms around the widget center.
func (gc *GraphCanvas) Scrolled(e *fyne.ScrollEvent) {
	factor := float32(1.0)
	if e.Scrolled.DY > 0 {
		factor = 1.1
	} else if e.Scrolled.DY < 0 {
		factor = 1 / 1.1
	}
	z := gc.zoom * factor
	if z < 0.25 {
		z = 0.25
	}
	if z > 4.0 {
		z = 4.0
	}
	gc.zoom = z
	gc.Refresh()
}

// FocusGained implements fyne.Focusable.
func (gc *GraphCanvas) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (gc *GraphCanvas) FocusLost() {}

// TypedRune implements fyne.Focusable; all edits arrive as keys.
func (gc *GraphCanvas) TypedRune(rune) {}

// TypedKey maps keyboard edits onto the session.
func (gc *GraphCanvas) TypedKey(e *fyne.KeyEvent) {
	s := gc.session()
	var k editor.Key
	switch e.Name {
	case fyne.KeyDelete, fyne.KeyBackspace:
		k = editor.KeyDelete
	case fyne.KeyB:
		k = editor.KeyB
	case fyne.KeyL:
		k = editor.KeyL
	case fyne.KeyR:
		k = editor.KeyR
	default:
		return
	}
	s.KeyPress(k)
	if gc.onEdit != nil && s.CurrentMode() == editor.ModeEdit {
		gc.onEdit()
	}
}

// CreateRenderer implements fyne.Widget.
func (gc *GraphCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.RGBA{R: 250, G: 250, B: 252, A: 255})
	return &graphCanvasRenderer{gc: gc, bg: bg, objects: []fyne.CanvasObject{bg}}
}

// PreferredSize is the minimum useful canvas area.
func (gc *GraphCanvas) PreferredSize() fyne.Size { return fyne.NewSize(480, 400) }

var (
	nodeFillColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	nodeStrokeColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	linkColor       = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	selectionColor  = color.RGBA{R: 30, G: 110, B: 220, A: 255}
	dragHintColor   = color.RGBA{R: 30, G: 110, B: 220, A: 140}
	labelColor      = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

type graphCanvasRenderer struct {
	gc      *GraphCanvas
	bg      *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *graphCanvasRenderer) Destroy()                     {}
func (r *graphCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *graphCanvasRenderer) MinSize() fyne.Size           { return r.gc.PreferredSize() }
func (r *graphCanvasRenderer) Refresh()                     { r.Layout(r.gc.Size()); canvas.Refresh(r.gc) }

// Layout rebuilds the scene primitives from the current view. The graph is
// small (tens of nodes), so regenerating the object list per frame is fine.
func (r *graphCanvasRenderer) Layout(size fyne.Size) {
	gc := r.gc
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	objs := []fyne.CanvasObject{r.bg}

	var s *editor.Session
	if gc.session != nil {
		s = gc.session()
	}
	if s == nil {
		r.objects = objs
		return
	}
	radius := layout.NodeRadius

	for _, lnk := range s.View.Links {
		src := s.View.NodeByID(lnk.Source)
		dst := s.View.NodeByID(lnk.Target)
		if src == nil || dst == nil {
			continue
		}
		col := linkColor
		if s.SelectedLink() == lnk {
			col = selectionColor
		}
		a := layout.Pt{X: src.X, Y: src.Y}
		b := layout.Pt{X: dst.X, Y: dst.Y}
		ta, tb := trimSegment(a, b, radius)
		objs = append(objs, r.line(ta, tb, col, 2))
		if lnk.RightArrow {
			objs = append(objs, r.arrow(ta, tb, col)...)
		}
		if lnk.LeftArrow {
			objs = append(objs, r.arrow(tb, ta, col)...)
		}
	}

	if from, to, active := s.DragLine(); active {
		objs = append(objs, r.line(from, to, dragHintColor, 2))
	}

	for _, n := range s.View.Nodes {
		center := layout.Pt{X: n.X, Y: n.Y}
		if n.Reflexive {
			loop := canvas.NewCircle(color.Transparent)
			loop.StrokeColor = nodeStrokeColor
			loop.StrokeWidth = 2
			lr := radius * 0.6
			lc := gc.toScreen(layout.Pt{X: n.X, Y: n.Y - radius - lr*0.7})
			d := float32(lr) * 2 * gc.zoom
			loop.Resize(fyne.NewSize(d, d))
			loop.Move(fyne.NewPos(lc.X-d/2, lc.Y-d/2))
			objs = append(objs, loop)
		}
		circle := canvas.NewCircle(nodeFillColor)
		circle.StrokeColor = nodeStrokeColor
		circle.StrokeWidth = 2
		if s.SelectedNode() == n {
			circle.StrokeColor = selectionColor
			circle.StrokeWidth = 3
		}
		pos := gc.toScreen(center)
		d := float32(radius) * 2 * gc.zoom
		circle.Resize(fyne.NewSize(d, d))
		circle.Move(fyne.NewPos(pos.X-d/2, pos.Y-d/2))
		objs = append(objs, circle)

		name := canvas.NewText(export.StateName(n.ID), labelColor)
		name.TextSize = 12 * gc.zoom
		name.Alignment = fyne.TextAlignCenter
		name.Move(fyne.NewPos(pos.X, pos.Y-name.TextSize/2))
		objs = append(objs, name)

		trueVars := make([]string, 0, s.VarCount())
		for i, v := range s.ActiveVars() {
			if n.Vals[i] {
				trueVars = append(trueVars, v)
			}
		}
		if len(trueVars) > 0 {
			vals := canvas.NewText(strings.Join(trueVars, ","), labelColor)
			vals.TextSize = 10 * gc.zoom
			vals.Alignment = fyne.TextAlignCenter
			vals.Move(fyne.NewPos(pos.X, pos.Y+d/2+2))
			objs = append(objs, vals)
		}
	}

	r.objects = objs
}

func (r *graphCanvasRenderer) line(a, b layout.Pt, col color.RGBA, width float32) *canvas.Line {
	ln := canvas.NewLine(col)
	ln.StrokeWidth = width
	ln.Position1 = r.gc.toScreen(a)
	ln.Position2 = r.gc.toScreen(b)
	return ln
}

// arrow draws the two arrowhead barbs for a link pointing from tail to tip.
func (r *graphCanvasRenderer) arrow(tail, tip layout.Pt, col color.RGBA) []fyne.CanvasObject {
	dx := tip.X - tail.X
	dy := tip.Y - tail.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return nil
	}
	angle := math.Atan2(dy, dx)
	const barb = 10.0
	const spread = 25 * math.Pi / 180
	left := layout.Pt{
		X: tip.X - barb*math.Cos(angle-spread),
		Y: tip.Y - barb*math.Sin(angle-spread),
	}
	right := layout.Pt{
		X: tip.X - barb*math.Cos(angle+spread),
		Y: tip.Y - barb*math.Sin(angle+spread),
	}
	return []fyne.CanvasObject{
		r.line(tip, left, col, 2),
		r.line(tip, right, col, 2),
	}
}

// trimSegment shortens both ends of the segment by the node radius so lines
// meet the circle edge, not the center.
func trimSegment(a, b layout.Pt, radius float64) (layout.Pt, layout.Pt) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dist := math.Hypot(dx, dy)
	if dist <= 2*radius {
		return a, b
	}
	ux, uy := dx/dist, dy/dist
	return layout.Pt{X: a.X + ux*radius, Y: a.Y + uy*radius},
		layout.Pt{X: b.X - ux*radius, Y: b.Y - uy*radius}
}

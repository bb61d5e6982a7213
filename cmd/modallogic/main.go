/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/silky/modallogic/internal/crash"
	"github.com/silky/modallogic/internal/export"
	applog "github.com/silky/modallogic/internal/log"
	"github.com/silky/modallogic/internal/modal"
	"github.com/silky/modallogic/internal/modelspec"
	"github.com/silky/modallogic/internal/ui"
	"github.com/silky/modallogic/internal/version"
)

func usage() {
	fmt.Println("Modal Logic Playground — Kripke model editor and checker")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  modallogic version|-v|--version               Show version")
	fmt.Println("  modallogic ui [<file>]                        Launch desktop UI (build with -tags fyne for full UI)")
	fmt.Println("  modallogic eval <file> <state> <formula>      Check a formula at a state (state: w0 or 0)")
	fmt.Println("  modallogic export <file> <out>                Render a model to .svg, .png, .pdf or .dot")
	fmt.Println("  modallogic examples [<name> [<out>]]          List built-in models, or write one out")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var ref *crash.ModelRef
	defer func() { crash.Recover(ref) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Modal Logic Playground")
			fmt.Println(version.String())
			return
		case "ui":
			var file string
			if len(args) >= 3 {
				file = args[2]
			}
			if err := ui.Run(file); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "eval":
			if len(args) < 5 {
				fmt.Println("eval requires <file>, <state> and <formula>")
				usage()
				os.Exit(2)
			}
			file, state, formula := args[2], args[3], strings.Join(args[4:], " ")
			doc, err := openDocument(l, file, &ref)
			if err != nil {
				os.Exit(1)
			}
			if err := evalFormula(l, doc, state, formula); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <file> and <out>")
				usage()
				os.Exit(2)
			}
			file, out := args[2], args[3]
			doc, err := openDocument(l, file, &ref)
			if err != nil {
				os.Exit(1)
			}
			if err := exportDocument(l, doc, out); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Wrote", out)
			return
		case "examples":
			if len(args) < 3 {
				for _, name := range modelspec.ExampleNames() {
					fmt.Println(name)
				}
				return
			}
			name := args[2]
			doc, err := modelspec.Example(name)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			if len(args) >= 4 {
				out := args[3]
				if err := modelspec.Save(out, doc); err != nil {
					l.Error("example save failed", slog.Any("err", err))
					fmt.Println("Error:", err)
					os.Exit(1)
				}
				fmt.Println("Wrote", out)
				return
			}
			data, err := modelspec.Encode(doc, ".json")
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			os.Stdout.Write(data)
			return
		}
	}

	usage()
}

// openDocument loads and validates a model file, wiring it into the crash
// handler so a later panic can still autosave it.
func openDocument(l *slog.Logger, file string, ref **crash.ModelRef) (*modelspec.Document, error) {
	abs, _ := filepath.Abs(file)
	doc, err := modelspec.Load(abs)
	if err != nil {
		l.Error("open failed", slog.String("path", abs), slog.Any("err", err))
		fmt.Println("Error:", err)
		return nil, err
	}
	*ref = &crash.ModelRef{Path: abs, Snapshot: func() *modelspec.Document { return doc }}
	l.Info("model opened", slog.String("path", abs), slog.Int("states", len(doc.States)))
	return doc, nil
}

func evalFormula(l *slog.Logger, doc *modelspec.Document, state, formula string) error {
	m, _, err := doc.Build()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(strings.TrimPrefix(state, "w"))
	if err != nil {
		return fmt.Errorf("state %q is not a state name", state)
	}
	if id < 0 || id >= m.NumStates() || !m.Live(id) {
		return fmt.Errorf("no state %s in model", export.StateName(id))
	}
	varCount := doc.VarCount
	if varCount == 0 {
		varCount = len(doc.Vars)
	}
	checker := modal.Checker{}
	for _, name := range checker.Variables(formula) {
		known := false
		for _, v := range doc.Vars[:varCount] {
			if v == name {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown variable %q", name)
		}
	}
	f, err := checker.Parse(formula)
	if err != nil {
		return err
	}
	value, err := checker.Evaluate(m, id, f)
	if err != nil {
		return err
	}
	verdict := "false"
	if value {
		verdict = "true"
	}
	l.Info("formula evaluated", slog.String("formula", formula), slog.Int("state", id), slog.Bool("value", value))
	fmt.Printf("%s is %s at %s\n", checker.DisplayForm(formula), verdict, export.StateName(id))
	return nil
}

func exportDocument(l *slog.Logger, doc *modelspec.Document, out string) error {
	m, v, err := doc.Build()
	if err != nil {
		return err
	}
	varCount := doc.VarCount
	if varCount == 0 {
		varCount = len(doc.Vars)
	}
	opt := export.Options{VarCount: varCount}
	ext := strings.ToLower(filepath.Ext(out))
	switch ext {
	case ".svg":
		err = export.ExportSVG(m, v, out, opt)
	case ".png":
		err = export.ExportPNG(m, v, out, opt)
	case ".pdf":
		err = export.ExportPDF(m, v, doc.Name, out, opt)
	case ".dot":
		err = export.ExportDOT(m, varCount, out)
	default:
		return fmt.Errorf("unsupported export format %q (want .svg, .png, .pdf or .dot)", ext)
	}
	if err != nil {
		l.Error("export failed", slog.String("path", out), slog.Any("err", err))
		return err
	}
	l.Info("model exported", slog.String("path", out))
	return nil
}

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package modelspec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chainDoc() *Document {
	return &Document{
		Name:     "test",
		Vars:     []string{"p", "q"},
		VarCount: 2,
		States: []StateSpec{
			{ID: 0, X: 10, Y: 20, Vals: []bool{false, false}},
			{ID: 1, X: 110, Y: 20, Vals: []bool{true, false}},
		},
		Links: []LinkSpec{{Source: 0, Target: 1, Right: true}},
	}
}

func TestSaveLoadRoundTripJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := Save(path, chainDoc()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Name != "test" || len(got.States) != 2 || len(got.Links) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if !got.States[1].Vals[0] {
		t.Fatalf("valuation lost in round trip")
	}
}

func TestSaveLoadRoundTripYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	if err := Save(path, chainDoc()); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(got.States) != 2 || !got.Links[0].Right {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"missing vars":  `{"name":"x","states":[],"links":[]}`,
		"bad var name":  `{"name":"x","vars":["1p"],"states":[],"links":[]}`,
		"extra field":   `{"name":"x","vars":["p"],"states":[],"links":[],"bogus":1}`,
		"negative id":   `{"name":"x","vars":["p"],"states":[{"id":-1,"x":0,"y":0,"vals":[false]}],"links":[]}`,
		"scalar state":  `{"name":"x","vars":["p"],"states":["s"],"links":[]}`,
	}
	for label, body := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(label, " ", "_")+".json")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Fatalf("%s: accepted invalid document", label)
		}
	}
}

func TestCheckCatchesStructuralProblems(t *testing.T) {
	base := chainDoc()

	d := *base
	d.States = append([]StateSpec(nil), base.States...)
	d.States[1].ID = 0
	if err := d.Check(); err == nil {
		t.Fatalf("duplicate id accepted")
	}

	d = *base
	d.Links = []LinkSpec{{Source: 1, Target: 0, Right: true}}
	if err := d.Check(); err == nil {
		t.Fatalf("unnormalized link accepted")
	}

	d = *base
	d.Links = []LinkSpec{{Source: 0, Target: 5, Right: true}}
	if err := d.Check(); err == nil {
		t.Fatalf("dangling link accepted")
	}

	d = *base
	d.Links = []LinkSpec{{Source: 0, Target: 1}}
	if err := d.Check(); err == nil {
		t.Fatalf("directionless link accepted")
	}

	d = *base
	d.States = []StateSpec{{ID: 0, Vals: []bool{true}}}
	d.Links = nil
	if err := d.Check(); err == nil {
		t.Fatalf("wrong valuation arity accepted")
	}
}

func TestBuildPreservesTombstones(t *testing.T) {
	d := chainDoc()
	d.States[1].ID = 2 // id 1 was deleted at some point
	d.Links = []LinkSpec{{Source: 0, Target: 2, Right: true}}
	d.NextID = 3

	m, v, err := d.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if m.NumStates() != 3 {
		t.Fatalf("NumStates = %d, want 3", m.NumStates())
	}
	if m.Live(1) {
		t.Fatalf("tombstone resurrected")
	}
	if id := m.AddState(nil); id != 3 {
		t.Fatalf("next id = %d, want 3", id)
	}
	if v.NodeByID(1) != nil {
		t.Fatalf("view has node for tombstone")
	}
	if !m.HasTransition(0, 2) {
		t.Fatalf("relation not rebuilt from link flags")
	}
}

func TestBuildDerivesRelationFromFlags(t *testing.T) {
	d := chainDoc()
	d.States[0].Reflexive = true
	d.Links[0].Left = true

	m, v, err := d.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !m.HasTransition(0, 0) || !m.HasTransition(0, 1) || !m.HasTransition(1, 0) {
		t.Fatalf("relation incomplete: %v", m.Relation)
	}
	n := v.NodeByID(0)
	if n == nil || !n.Reflexive {
		t.Fatalf("reflexive flag lost")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	d := chainDoc()
	d.NextID = 2
	m, v, err := d.Build()
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	got := Snapshot("test", m, v, 2)
	if got.NextID != 2 || len(got.States) != 2 || len(got.Links) != 1 {
		t.Fatalf("snapshot diverged: %+v", got)
	}
	if got.Links[0] != d.Links[0] {
		t.Fatalf("link lost: %+v", got.Links[0])
	}
}

func TestSaveKeepsBackupAndLoadFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")
	if err := Save(path, chainDoc()); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	second := chainDoc()
	second.Name = "second"
	if err := Save(path, second); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(dir, BackupsDirName))
	if err != nil || len(ents) == 0 {
		t.Fatalf("no backup written: %v", err)
	}

	// corrupt the current file: Load must recover the previous version
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt fixture: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load after corruption: %v", err)
	}
	if got.Name != "test" {
		t.Fatalf("recovered wrong document: %q", got.Name)
	}
}

func TestExamplesAllBuild(t *testing.T) {
	names := ExampleNames()
	if len(names) == 0 {
		t.Fatalf("no builtin examples")
	}
	for _, name := range names {
		d, err := Example(name)
		if err != nil {
			t.Fatalf("Example(%q): %v", name, err)
		}
		if _, _, err := d.Build(); err != nil {
			t.Fatalf("example %q does not build: %v", name, err)
		}
	}
	if _, err := Example("nope"); err == nil {
		t.Fatalf("unknown example accepted")
	}
}

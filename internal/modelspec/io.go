/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package modelspec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// BackupsDirName is the sibling directory that keeps timestamped copies of
// overwritten documents.
const BackupsDirName = "backups"

// Load reads, validates, and checks a document. The format follows the file
// extension (.json, .yaml, .yml). If the current file cannot be read or
// parsed, the latest timestamped backup is tried before giving up.
func Load(path string) (*Document, error) {
	d, err := loadFile(path)
	if err == nil {
		return d, nil
	}
	b, berr := loadLatestBackup(path)
	if berr != nil {
		return nil, fmt.Errorf("load document: %w; backup attempt: %v", err, berr)
	}
	return b, nil
}

func loadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, filepath.Ext(path))
}

// Decode parses document bytes in the format implied by ext. JSON input is
// schema-validated as-is; YAML is decoded first and validated through its
// JSON rendition.
func Decode(data []byte, ext string) (*Document, error) {
	var d Document
	switch strings.ToLower(ext) {
	case ".json", "":
		if err := validateJSON(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse document: %w", err)
		}
		jb, err := json.Marshal(&d)
		if err != nil {
			return nil, fmt.Errorf("re-encode document: %w", err)
		}
		if err := validateJSON(jb); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q", ext)
	}
	if err := d.Check(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode renders the document in the format implied by ext.
func Encode(d *Document, ext string) ([]byte, error) {
	if err := d.Check(); err != nil {
		return nil, err
	}
	switch strings.ToLower(ext) {
	case ".json", "":
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal document: %w", err)
		}
		return append(data, '\n'), nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal document: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported document format %q", ext)
	}
}

// Save writes the document to path with transactional semantics: the previous
// file (if any) is copied to a timestamped backup, then the new content is
// written to a temp file in the same directory and renamed over the target.
func Save(path string, d *Document) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("document path is required")
	}
	data, err := Encode(d, filepath.Ext(path))
	if err != nil {
		return err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := backupCurrent(path); err != nil {
			return fmt.Errorf("backup current document: %w", err)
		}
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create document dir: %w", err)
	}
	temp := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%d-%d", filepath.Base(path), os.Getpid(), rand.Int()))
	if err := writeFileSync(temp, data); err != nil {
		return fmt.Errorf("write temp document: %w", err)
	}
	// remove-then-rename keeps Windows happy
	if _, err := os.Stat(path); err == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		_ = os.Remove(temp)
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func backupCurrent(path string) error {
	bdir := filepath.Join(filepath.Dir(path), BackupsDirName)
	if err := os.MkdirAll(bdir, 0o755); err != nil {
		return err
	}
	stamp := time.Now().Format("20060102-150405")
	bname := fmt.Sprintf("%s.%s.bak", filepath.Base(path), stamp)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return writeFileSync(filepath.Join(bdir, bname), data)
}

func loadLatestBackup(path string) (*Document, error) {
	bdir := filepath.Join(filepath.Dir(path), BackupsDirName)
	base := filepath.Base(path)
	ents, err := os.ReadDir(bdir)
	if err != nil {
		return nil, fmt.Errorf("read backups dir: %w", err)
	}
	var candidates []string
	for _, e := range ents {
		name := e.Name()
		if strings.HasPrefix(name, base+".") && strings.HasSuffix(name, ".bak") {
			candidates = append(candidates, filepath.Join(bdir, name))
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("no backups found")
	}
	sort.Strings(candidates) // timestamp in name yields lexicographic order
	latest := candidates[len(candidates)-1]
	data, err := os.ReadFile(latest)
	if err != nil {
		return nil, fmt.Errorf("read latest backup: %w", err)
	}
	return Decode(data, filepath.Ext(path))
}

// writeFileSync writes data to a file and flushes it to disk.
func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err := f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}

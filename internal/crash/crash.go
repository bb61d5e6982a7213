/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash /*
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	applog "github.com/silky/modallogic/internal/log"
	"github.com/silky/modallogic/internal/modelspec"
	"github.com/silky/modallogic/internal/telemetry"
	"github.com/silky/modallogic/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// ModelRef points at the open model document for crash autosave. Snapshot is
// called inside the recovery path and must not panic; it may return nil when
// nothing is open.
type ModelRef struct {
	Path     string
	Snapshot func() *modelspec.Document
}

// Recover captures a panic, logs an error with stacktrace, writes an error
// report file, and attempts a crash-safe autosave of the open model document
// (if provided).
//
// Usage: defer func(){ crash.Recover(ref) }()
func Recover(ref *ModelRef) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, _ := writeReport(ref, r, stack)
		if ref != nil && ref.Snapshot != nil {
			if path, err := autosave(ref); err != nil {
				l.Error("autosave crash snapshot failed", slog.Any("err", err))
			} else if path != "" {
				l.Info("autosave crash snapshot written", slog.String("path", path))
			}
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

// autosave writes the current document next to its file (or the temp dir)
// under a timestamped autosave name, never touching the document itself.
func autosave(ref *ModelRef) (string, error) {
	d := ref.Snapshot()
	if d == nil {
		return "", nil
	}
	dir := reportDir(ref)
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(dir, fmt.Sprintf("autosave-%s.json", stamp))
	data, err := modelspec.Encode(d, ".json")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func reportDir(ref *ModelRef) string {
	dir := os.TempDir()
	if ref != nil && ref.Path != "" {
		dir = filepath.Join(filepath.Dir(ref.Path), modelspec.BackupsDirName)
		_ = os.MkdirAll(dir, 0o755)
	}
	return dir
}

func writeReport(ref *ModelRef, panicVal any, stack []byte) (string, error) {
	dir := reportDir(ref)
	stamp := time.Now().Format("20060102-150405")
	fname := fmt.Sprintf("crash-%s.log", stamp)
	path := filepath.Join(dir, fname)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Modal Logic Playground Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if ref != nil && ref.Path != "" {
		_, _ = fmt.Fprintf(&buf, "Document: %s\n", ref.Path)
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	// write to file
	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()

	// optionally upload anonymized crash report (opt-in via env)
	telemetry.UploadCrash(buf.Bytes())
	return path, nil
}

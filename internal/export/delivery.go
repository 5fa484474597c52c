// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/akashagarwal318/interview-spark-notes-app-sub000/internal/util"
)

// =============================================================================
// SINKS
// =============================================================================

// Sink receives finished artifacts.
type Sink interface {
	// Deliver stores or transmits a and returns where it went.
	Deliver(ctx context.Context, a *Artifact) (string, error)
}

// Opener is implemented by sinks that can show a delivered artifact to the
// user, e.g. in the system browser.
type Opener interface {
	Open(location string) error
}

// autoOpener is implemented by sinks that may open artifacts themselves
// during Deliver.
type autoOpener interface {
	OpensOnDeliver() bool
}

func opensOnDeliver(s Sink) bool {
	ao, ok := s.(autoOpener)
	return ok && ao.OpensOnDeliver()
}

// DirSink writes artifacts into a directory.
type DirSink struct {
	Dir string

	// OpenAfterExport opens each delivered file in the default application.
	OpenAfterExport bool

	open func(string) error
}

// NewDirSink creates a sink writing into dir.
func NewDirSink(dir string, openAfter bool) *DirSink {
	if dir == "" {
		dir = "."
	}
	return &DirSink{Dir: dir, OpenAfterExport: openAfter, open: openFile}
}

// Deliver writes a atomically and returns its path.
func (s *DirSink) Deliver(ctx context.Context, a *Artifact) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, a.Name)
	if err := util.AtomicWriteFile(path, a.Data, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	if s.OpenAfterExport {
		// Non-fatal - file was still created successfully
		_ = s.Open(path)
	}
	return path, nil
}

// OpensOnDeliver reports whether Deliver already opens each file.
func (s *DirSink) OpensOnDeliver() bool {
	return s.OpenAfterExport
}

// Open opens path in the default application.
func (s *DirSink) Open(path string) error {
	if s.open == nil {
		return openFile(path)
	}
	return s.open(path)
}

// WriterSink streams artifact bytes to a writer, e.g. stdout.
type WriterSink struct {
	W io.Writer
}

// Deliver writes a.Data to the writer.
func (s *WriterSink) Deliver(ctx context.Context, a *Artifact) (string, error) {
	if _, err := s.W.Write(a.Data); err != nil {
		return "", fmt.Errorf("write %s: %w", a.Name, err)
	}
	return "-", nil
}

// MemorySink keeps artifacts in memory.
type MemorySink struct {
	mu        sync.Mutex
	Artifacts []*Artifact
	Opened    []string
}

// Deliver records a.
func (s *MemorySink) Deliver(ctx context.Context, a *Artifact) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Artifacts = append(s.Artifacts, a)
	return "memory://" + a.Name, nil
}

// Open records location as opened.
func (s *MemorySink) Open(location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Opened = append(s.Opened, location)
	return nil
}

// Last returns the most recently delivered artifact.
func (s *MemorySink) Last() *Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Artifacts) == 0 {
		return nil
	}
	return s.Artifacts[len(s.Artifacts)-1]
}

// =============================================================================
// NAMING AND BUNDLING
// =============================================================================

// exportName returns "export-<timestamp><ext>".
func exportName(at time.Time, ext string) string {
	return "export-" + util.FileTimestamp(at) + ext
}

// batchName returns "export-batch-<timestamp>.zip".
func batchName(at time.Time) string {
	return "export-batch-" + util.FileTimestamp(at) + ".zip"
}

// uniqueNamer yields distinct entry names. Repeats of a name get -2, -3, ...
// inserted before the extension.
type uniqueNamer struct {
	seen map[string]int
}

func (u *uniqueNamer) name(base, ext string) string {
	if u.seen == nil {
		u.seen = map[string]int{}
	}
	u.seen[base]++
	if n := u.seen[base]; n > 1 {
		return fmt.Sprintf("%s-%d%s", base, n, ext)
	}
	return base + ext
}

// bundle zips the artifacts in order.
func bundle(entries []*Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, a := range entries {
		w, err := zw.Create(a.Name)
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", a.Name, err)
		}
		if _, err := w.Write(a.Data); err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", a.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finish zip: %w", err)
	}
	return buf.Bytes(), nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		// Quoted empty string is the window title; path must be last
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

// splitFormat maps the requested format onto a split entry renderer:
// Markdown and DOCX keep their format, everything else becomes HTML.
func splitFormat(f Format) Format {
	switch f {
	case FormatMarkdown, FormatDOCX:
		return f
	default:
		return FormatHTML
	}
}

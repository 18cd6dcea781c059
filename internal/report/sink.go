// Parking Report - NYC Parking Violation Gold-Table Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkingreport

package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Sink receives rendered artifacts by name.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// DirSink writes artifacts as files in one directory.
type DirSink struct {
	dir string
}

// NewDirSink creates dir if needed and returns a sink writing into it.
func NewDirSink(dir string) (*DirSink, error) {
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

// Dir returns the output directory.
func (s *DirSink) Dir() string {
	return s.dir
}

// Create opens <dir>/<name> for writing, replacing any previous artifact.
func (s *DirSink) Create(name string) (io.WriteCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o640) //nolint:gosec // path is built from a validated base name
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return f, nil
}

// MemorySink keeps artifacts in memory.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Create returns a writer whose bytes are stored under name on Close.
func (s *MemorySink) Create(name string) (io.WriteCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &memoryFile{sink: s, name: name}, nil
}

// Get returns a copy of the stored artifact.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[name]
	return bytes.Clone(b), ok
}

// Names returns the stored artifact names, sorted.
func (s *MemorySink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type memoryFile struct {
	bytes.Buffer
	sink *MemorySink
	name string
}

func (f *memoryFile) Close() error {
	f.sink.mu.Lock()
	defer f.sink.mu.Unlock()
	f.sink.files[f.name] = bytes.Clone(f.Bytes())
	return nil
}

// validateName rejects names that would escape the sink.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid artifact name %q", name)
	}
	return nil
}

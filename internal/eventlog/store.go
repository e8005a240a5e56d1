// Package eventlog reads the primary session store: one
// directory per project, each holding append-only JSONL event
// logs. It reconstructs canonical working directories from noisy
// history, aggregates deduplicated session records, and supports
// per-session message retrieval and deletion.
package eventlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	initialScanBufSize = 64 * 1024        // 64KB
	maxScanTokenSize   = 20 * 1024 * 1024 // 20MB
)

// DefaultRecencyThreshold is the fraction of the most frequent
// cwd's count that the most recent cwd must reach for recency to
// win during directory extraction. Heuristic, kept configurable.
const DefaultRecencyThreshold = 0.25

// Store reads a primary-store directory tree.
type Store struct {
	dir              string
	recencyThreshold float64
}

// NewStore creates a Store rooted at dir. A non-positive
// recencyThreshold falls back to the default.
func NewStore(dir string, recencyThreshold float64) *Store {
	if recencyThreshold <= 0 || recencyThreshold > 1 {
		recencyThreshold = DefaultRecencyThreshold
	}
	return &Store{dir: dir, recencyThreshold: recencyThreshold}
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// ProjectDir returns the directory for a project identifier.
func (s *Store) ProjectDir(identifier string) string {
	return filepath.Join(s.dir, identifier)
}

// ProjectIDs lists the identifiers present in the store. A
// missing store root yields an empty list.
func (s *Store) ProjectIDs() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing store %s: %w", s.dir, err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	return ids, nil
}

// logFile is an event-log file with its modification time.
type logFile struct {
	path  string
	mtime time.Time
}

// logFiles returns a project's event-log files sorted by
// modification time descending. A missing project directory
// yields an empty list.
func (s *Store) logFiles(identifier string) ([]logFile, error) {
	dir := s.ProjectDir(identifier)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []logFile
	for _, e := range entries {
		if e.IsDir() ||
			!strings.HasSuffix(e.Name(), ".jsonl") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue // vanished between readdir and stat
		}
		files = append(files, logFile{
			path:  filepath.Join(dir, e.Name()),
			mtime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].mtime.After(files[j].mtime)
	})
	return files, nil
}

// Package registry persists project metadata overrides (display
// names, manual registrations) as a single JSON document. The
// document is the sole source of truth: absent entries mean "no
// override", and a full-document overwrite replaces everything.
package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Entry is the per-project metadata stored in the registry,
// keyed by project identifier.
type Entry struct {
	DisplayName   string `json:"displayName,omitempty"`
	ManuallyAdded bool   `json:"manuallyAdded,omitempty"`
	OriginalPath  string `json:"originalPath,omitempty"`
}

// Store reads and writes the registry document at a fixed path.
// Writers are not serialized: concurrent saves race at the
// document level and the last write wins.
type Store struct {
	path string
}

// NewStore creates a Store backed by the document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the registry document.
func (s *Store) Path() string {
	return s.path
}

// Load returns the registry contents. A missing, unreadable, or
// corrupt document yields an empty mapping, never an error — the
// registry only holds overrides, so "nothing readable" and
// "nothing configured" are the same state.
func (s *Store) Load() map[string]Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("reading registry %s: %v", s.path, err)
		}
		return map[string]Entry{}
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("parsing registry %s: %v", s.path, err)
		return map[string]Entry{}
	}
	if entries == nil {
		entries = map[string]Entry{}
	}
	return entries
}

// Save overwrites the registry document with entries, creating
// the parent directory if absent.
func (s *Store) Save(entries map[string]Entry) error {
	if err := os.MkdirAll(
		filepath.Dir(s.path), 0o700,
	); err != nil && !os.IsExist(err) {
		return fmt.Errorf(
			"creating registry dir for %s: %w", s.path, err,
		)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf(
			"writing registry %s: %w", s.path, err,
		)
	}
	return nil
}

// Package project orchestrates the discovery surface: it joins
// the registry, the primary event-log store, and the secondary
// cursor store into Project listings, and runs the secure
// provisioning pipeline for new projects.
package project

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/mbergquist/agentdirs/internal/config"
	"github.com/mbergquist/agentdirs/internal/cursor"
	"github.com/mbergquist/agentdirs/internal/eventlog"
	"github.com/mbergquist/agentdirs/internal/provision"
	"github.com/mbergquist/agentdirs/internal/registry"
)

// recentSessionLimit is how many sessions a listing shows per
// project.
const recentSessionLimit = 5

// ErrProjectNotEmpty reports a deletion attempt on a project
// that still has sessions.
var ErrProjectNotEmpty = errors.New("project is not empty")

// Project is the derived, never-persisted view of one tracked
// working directory, reconstructed on every listing.
type Project struct {
	Identifier      string                   `json:"identifier"`
	CanonicalPath   string                   `json:"canonicalPath"`
	DisplayName     string                   `json:"displayName"`
	Sessions        []eventlog.SessionRecord `json:"sessions"`
	CursorSessions  []cursor.Session         `json:"cursorSessions"`
	IsManuallyAdded bool                     `json:"isManuallyAdded"`
	IsCustomName    bool                     `json:"isCustomName"`
}

// AddResult reports the outcome of registering a project.
type AddResult struct {
	Identifier string `json:"identifier"`
	Path       string `json:"path"`
	Created    bool   `json:"created"`
}

// Service owns the caches and store handles for one discovery
// instance. Caches live here rather than in package state so
// tests and embedders control their lifetime.
type Service struct {
	cfg       config.Config
	registry  *registry.Store
	logs      *eventlog.Store
	cursor    *cursor.Store
	dirCache  *DirCache
	rootCache *provision.RootCache
}

// NewService wires a Service from configuration.
func NewService(cfg config.Config) *Service {
	return &Service{
		cfg:       cfg,
		registry:  registry.NewStore(cfg.RegistryPath),
		logs:      eventlog.NewStore(cfg.ProjectsDir, cfg.RecencyThreshold),
		cursor:    cursor.NewStore(cfg.CursorChatsDir),
		dirCache:  NewDirCache(),
		rootCache: provision.NewRootCache(),
	}
}

// CanonicalPath returns the project's inferred working
// directory, cached per identifier.
func (s *Service) CanonicalPath(identifier string) string {
	if path, ok := s.dirCache.Get(identifier); ok {
		return path
	}
	path := s.logs.ExtractDirectory(identifier)
	s.dirCache.Put(identifier, path)
	return path
}

// List reconstructs every known project: the union of store
// directories and registry entries, each with its canonical
// path, recent sessions, and cursor sessions. Per-project
// discovery failures degrade that project, never the listing.
func (s *Service) List() ([]Project, error) {
	entries := s.registry.Load()

	ids, err := s.logs.ProjectIDs()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	// Manually registered projects appear even without a store
	// directory.
	for id := range entries {
		if !seen[id] {
			ids = append(ids, id)
			seen[id] = true
		}
	}
	sort.Strings(ids)

	projects := make([]Project, 0, len(ids))
	for _, id := range ids {
		projects = append(projects, s.buildProject(id, entries[id]))
	}
	return projects, nil
}

func (s *Service) buildProject(
	identifier string, entry registry.Entry,
) Project {
	canonical := s.CanonicalPath(identifier)

	page, err := s.logs.ListSessions(identifier, recentSessionLimit, 0)
	if err != nil {
		log.Printf("listing sessions for %s: %v", identifier, err)
	}

	cursorSessions, err := s.cursor.ListSessions(canonical)
	if err != nil {
		log.Printf("cursor sessions for %s: %v", identifier, err)
	}

	displayName := entry.DisplayName
	if displayName == "" {
		displayName = collapseHome(canonical)
	}

	return Project{
		Identifier:      identifier,
		CanonicalPath:   canonical,
		DisplayName:     displayName,
		Sessions:        page.Sessions,
		CursorSessions:  cursorSessions,
		IsManuallyAdded: entry.ManuallyAdded,
		IsCustomName:    entry.DisplayName != "",
	}
}

// workspaceRoot resolves and validates the configured root,
// consulting the environment on every call so changes take
// effect without a restart. Validation per distinct raw value is
// cached.
func (s *Service) workspaceRoot() (string, error) {
	raw := os.Getenv(config.WorkspaceRootEnv)
	if raw == "" {
		raw = s.cfg.WorkspaceRoot
	}
	return s.rootCache.Resolve(raw)
}

// Add validates rawName, provisions its directory under the
// workspace root, and registers it. Re-registering an already
// known path fails; re-provisioning an existing directory that
// is not yet registered succeeds with Created=false.
func (s *Service) Add(rawName, displayName string) (AddResult, error) {
	name, err := provision.ValidateName(rawName)
	if err != nil {
		return AddResult{}, err
	}
	root, err := s.workspaceRoot()
	if err != nil {
		return AddResult{}, err
	}
	abs, created, err := provision.Provision(name, root)
	if err != nil {
		return AddResult{}, err
	}

	identifier := eventlog.EncodePath(abs)
	entries := s.registry.Load()
	if _, exists := entries[identifier]; exists {
		return AddResult{}, &provision.Error{
			Kind:   provision.KindAlreadyRegistered,
			Path:   abs,
			Detail: "project already registered",
		}
	}
	entries[identifier] = registry.Entry{
		DisplayName:   displayName,
		ManuallyAdded: true,
		OriginalPath:  abs,
	}
	if err := s.registry.Save(entries); err != nil {
		return AddResult{}, err
	}
	s.dirCache.Clear()

	return AddResult{
		Identifier: identifier,
		Path:       abs,
		Created:    created,
	}, nil
}

// Rename sets or clears a project's display-name override.
func (s *Service) Rename(identifier, displayName string) error {
	entries := s.registry.Load()
	entry := entries[identifier]
	entry.DisplayName = displayName

	if entry == (registry.Entry{}) {
		delete(entries, identifier)
	} else {
		entries[identifier] = entry
	}
	if err := s.registry.Save(entries); err != nil {
		return err
	}
	s.dirCache.Clear()
	return nil
}

// Delete removes an empty project: its store directory tree and
// its registry entry.
func (s *Service) Delete(identifier string) error {
	empty, err := s.logs.IsEmpty(identifier)
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("%w: %s", ErrProjectNotEmpty, identifier)
	}

	if err := s.logs.DeleteProject(identifier); err != nil {
		return err
	}

	entries := s.registry.Load()
	if _, ok := entries[identifier]; ok {
		delete(entries, identifier)
		if err := s.registry.Save(entries); err != nil {
			return err
		}
	}
	s.dirCache.Clear()
	return nil
}

// Sessions pages a project's aggregated session records.
func (s *Service) Sessions(
	identifier string, limit, offset int,
) (eventlog.SessionPage, error) {
	return s.logs.ListSessions(identifier, limit, offset)
}

// Messages pages one session's raw entries.
func (s *Service) Messages(
	identifier, sessionID string, limit, offset int,
) (eventlog.MessagePage, error) {
	return s.logs.SessionMessages(identifier, sessionID, limit, offset)
}

// DeleteSession removes one session from a project's logs.
func (s *Service) DeleteSession(identifier, sessionID string) error {
	return s.logs.DeleteSession(identifier, sessionID)
}

// CursorSessions looks up secondary-store sessions for a project
// identifier or an absolute path.
func (s *Service) CursorSessions(pathOrIdentifier string) ([]cursor.Session, error) {
	path := pathOrIdentifier
	if !strings.ContainsRune(path, os.PathSeparator) {
		path = s.CanonicalPath(pathOrIdentifier)
	}
	return s.cursor.ListSessions(path)
}

// InvalidateCache drops cached canonical paths; exposed for the
// watcher and for configuration changes.
func (s *Service) InvalidateCache(identifiers ...string) {
	if len(identifiers) == 0 {
		s.dirCache.Clear()
		return
	}
	for _, id := range identifiers {
		s.dirCache.Invalidate(id)
	}
}

// collapseHome abbreviates the home directory prefix for display.
func collapseHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+string(os.PathSeparator)) {
		return "~" + path[len(home):]
	}
	return path
}

// Package cursor discovers sessions in the secondary store: a
// directory tree addressed by the MD5 hex digest of an absolute
// project path, with one SQLite database per session. The store
// belongs to an external tool, so everything here is read-only
// and the addressing scheme is a compatibility contract.
package cursor

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mbergquist/agentdirs/internal/timeutil"
)

// maxSessions caps how many sessions a lookup returns.
const maxSessions = 5

// dbFileName is the per-session database inside each session
// subdirectory.
const dbFileName = "store.db"

// Session is one discovered session, reconstructed on every
// lookup and never cached.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"createdAt"`
	LastActivity string `json:"lastActivity"`
	MessageCount int    `json:"messageCount"`
	ProjectPath  string `json:"projectPath"`

	createdAt time.Time
}

// Store reads a secondary-store directory tree.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// PathHash returns the MD5 hex digest of the raw absolute path
// string. This digest is the store's addressing scheme and must
// match it exactly — no normalization, no other hash.
func PathHash(absPath string) string {
	sum := md5.Sum([]byte(absPath))
	return hex.EncodeToString(sum[:])
}

// ListSessions returns up to maxSessions sessions for a project
// path, newest first. A missing project directory is an empty
// result, not an error. A broken individual session is logged
// and skipped so its siblings stay visible.
func (s *Store) ListSessions(absProjectPath string) ([]Session, error) {
	projectDir := filepath.Join(s.dir, PathHash(absProjectPath))
	entries, err := os.ReadDir(projectDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", projectDir, err)
	}

	var sessions []Session
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dbPath := filepath.Join(projectDir, e.Name(), dbFileName)
		if _, err := os.Stat(dbPath); err != nil {
			continue
		}

		sess, err := readSession(dbPath, e.Name(), absProjectPath)
		if err != nil {
			log.Printf("cursor session %s: %v", e.Name(), err)
			continue
		}
		sessions = append(sessions, sess)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].createdAt.After(sessions[j].createdAt)
	})
	if len(sessions) > maxSessions {
		sessions = sessions[:maxSessions]
	}
	return sessions, nil
}

// readSession extracts one session's metadata from its database.
func readSession(
	dbPath, sessionID, projectPath string,
) (Session, error) {
	db, err := sql.Open(
		"sqlite3", dbPath+"?mode=ro&_busy_timeout=3000",
	)
	if err != nil {
		return Session{}, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	defer db.Close()

	meta, err := readMeta(db)
	if err != nil {
		return Session{}, fmt.Errorf("reading meta: %w", err)
	}

	var messageCount int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM blobs",
	).Scan(&messageCount); err != nil {
		return Session{}, fmt.Errorf("counting blobs: %w", err)
	}

	var mtime time.Time
	if info, err := os.Stat(dbPath); err == nil {
		mtime = info.ModTime()
	}

	createdAt := metaTime(meta["createdAt"])
	if createdAt.IsZero() {
		createdAt = mtime
	}
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	lastActivity := mtime
	if lastActivity.IsZero() {
		lastActivity = createdAt
	}

	name := metaString(meta["title"])
	if name == "" {
		name = metaString(meta["name"])
	}
	if name == "" {
		name = "Untitled Session"
	}

	return Session{
		ID:           sessionID,
		Name:         name,
		CreatedAt:    timeutil.Format(createdAt),
		LastActivity: timeutil.Format(lastActivity),
		MessageCount: messageCount,
		ProjectPath:  projectPath,
		createdAt:    createdAt,
	}, nil
}

// readMeta loads all key/value rows, decoding hex-encoded-JSON
// values into their decoded form.
func readMeta(db *sql.DB) (map[string]any, error) {
	rows, err := db.Query("SELECT key, value FROM meta")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meta := make(map[string]any)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		meta[key] = decodeMetaValue(value)
	}
	return meta, rows.Err()
}

// hexPattern screens raw values before attempting a hex decode:
// decoding is only worth trying when the whole value is hex
// digits.
var hexPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// decodeMetaValue decodes a hex-encoded-JSON value, falling back
// to the raw string for anything that is not one.
func decodeMetaValue(raw string) any {
	if len(raw)%2 != 0 || !hexPattern.MatchString(raw) {
		return raw
	}
	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return raw
	}
	var v any
	if err := json.Unmarshal(decoded, &v); err != nil {
		return raw
	}
	return v
}

// metaTime interprets a decoded meta value as a timestamp:
// numbers are epoch milliseconds, strings are ISO-8601.
func metaTime(v any) time.Time {
	switch t := v.(type) {
	case float64:
		return time.UnixMilli(int64(t))
	case string:
		return timeutil.Parse(t)
	default:
		return time.Time{}
	}
}

func metaString(v any) string {
	s, _ := v.(string)
	return s
}

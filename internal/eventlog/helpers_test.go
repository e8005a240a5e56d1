package eventlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestStore creates a Store over a temp directory with the
// default recency threshold.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), 0)
}

// writeLog writes a log file for a project and pins its mtime so
// tests control the newest-first file ordering.
func writeLog(
	t *testing.T, s *Store,
	identifier, name, content string, mtime time.Time,
) string {
	t.Helper()
	dir := s.ProjectDir(identifier)
	require.NoError(t, os.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

// ts builds an ISO-8601 timestamp for a given day/hour offset in
// January 2024.
func ts(day, hour int) string {
	return time.Date(
		2024, 1, day, hour, 0, 0, 0, time.UTC,
	).Format(time.RFC3339)
}

package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrSessionNotFound reports that no log file contained the
// requested session id.
var ErrSessionNotFound = errors.New("session not found")

// DeleteSession strips a session's lines from every log file
// that contains them. All other lines survive untouched,
// malformed ones included — one session's removal must not
// destroy unrelated history.
func (s *Store) DeleteSession(identifier, sessionID string) error {
	files, err := s.logFiles(identifier)
	if err != nil {
		return err
	}

	found := false
	for _, f := range files {
		changed, err := stripSessionLines(f.path, sessionID)
		if err != nil {
			return err
		}
		if changed {
			found = true
		}
	}
	if !found {
		return fmt.Errorf(
			"%w: %s in project %s",
			ErrSessionNotFound, sessionID, identifier,
		)
	}
	return nil
}

// DeleteProject removes a project's directory tree. Emptiness is
// the caller's responsibility.
func (s *Store) DeleteProject(identifier string) error {
	dir := s.ProjectDir(identifier)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("removing %s: %w", dir, err)
	}
	return nil
}

// stripSessionLines rewrites path without the lines belonging to
// sessionID, reporting whether any were removed. The rewrite
// goes through a temp file in the same directory so a crash
// cannot leave a half-written log.
func stripSessionLines(
	path, sessionID string,
) (changed bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("open %s: %w", path, err)
	}

	var kept []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(
		make([]byte, 0, initialScanBufSize), maxScanTokenSize,
	)
	for scanner.Scan() {
		line := scanner.Text()
		if gjson.Valid(line) &&
			gjson.Get(line, "sessionId").Str == sessionID {
			changed = true
			continue
		}
		kept = append(kept, line)
	}
	scanErr := scanner.Err()
	f.Close()
	if scanErr != nil {
		return false, fmt.Errorf("scanning %s: %w", path, scanErr)
	}
	if !changed {
		return false, nil
	}

	content := strings.Join(kept, "\n")
	if len(kept) > 0 {
		content += "\n"
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o600); err != nil {
		return false, fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return false, fmt.Errorf("replacing %s: %w", path, err)
	}
	return true, nil
}

package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// MessagePage is one page of raw session entries, oldest first.
type MessagePage struct {
	Messages []json.RawMessage `json:"messages"`
	Total    int               `json:"total"`
	HasMore  bool              `json:"hasMore"`
}

// SessionMessages returns all raw log entries for one session,
// sorted by timestamp ascending. With a positive limit the
// window is anchored to the end of the sequence: offset counts
// back from the newest entry, so offset 0 is the most recent
// page. A non-positive limit returns everything.
func (s *Store) SessionMessages(
	identifier, sessionID string, limit, offset int,
) (MessagePage, error) {
	files, err := s.logFiles(identifier)
	if err != nil {
		return MessagePage{}, err
	}

	type rawEntry struct {
		line string
		ns   int64
	}
	var entries []rawEntry

	for _, f := range files {
		err := scanLines(f.path, func(line string) {
			e := decodeEntry(line)
			if e.kind == entrySkip || e.sessionID != sessionID {
				return
			}
			entries = append(entries, rawEntry{
				line: line,
				ns:   e.timestamp.UnixNano(),
			})
		})
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return MessagePage{}, err
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ns < entries[j].ns
	})

	total := len(entries)
	start, end := 0, total
	hasMore := false
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		end = max(0, total-offset)
		start = max(0, end-limit)
		hasMore = start > 0
	}

	msgs := make([]json.RawMessage, 0, end-start)
	for _, e := range entries[start:end] {
		msgs = append(msgs, json.RawMessage(e.line))
	}
	return MessagePage{
		Messages: msgs,
		Total:    total,
		HasMore:  hasMore,
	}, nil
}

// scanLines streams non-blank lines of a log file.
func scanLines(path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(
		make([]byte, 0, initialScanBufSize), maxScanTokenSize,
	)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fn(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	return nil
}

package eventlog

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/mbergquist/agentdirs/internal/timeutil"
)

// defaultSummary is the placeholder until a session gains a
// summary event or a real user message.
const defaultSummary = "New Session"

// summaryMaxLen caps summaries derived from user messages.
const summaryMaxLen = 50

// SessionRecord is one deduplicated session aggregated from a
// project's event logs.
type SessionRecord struct {
	ID           string `json:"id"`
	Summary      string `json:"summary"`
	MessageCount int    `json:"messageCount"`
	LastActivity string `json:"lastActivity,omitempty"`
	CWD          string `json:"cwd,omitempty"`

	lastActivity int64 // unix nanos, for sorting
}

// SessionPage is one page of session records.
type SessionPage struct {
	Sessions []SessionRecord `json:"sessions"`
	Total    int             `json:"total"`
	HasMore  bool            `json:"hasMore"`
}

// ParseSessionLog parses one event-log file into session
// records, merging successive entries per session id: the first
// entry creates the record, a summary event overwrites the
// summary, the first plain user message (command markup
// excluded) becomes the summary otherwise, every entry counts as
// a message, and the latest timestamp wins. Records come back in
// first-seen order.
func ParseSessionLog(path string) ([]SessionRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var (
		records = make(map[string]*SessionRecord)
		order   []string
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(
		make([]byte, 0, initialScanBufSize), maxScanTokenSize,
	)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		e := decodeEntry(line)
		if e.kind == entrySkip {
			log.Printf("skipping malformed line in %s", path)
			continue
		}
		if e.sessionID == "" {
			continue
		}

		rec, ok := records[e.sessionID]
		if !ok {
			rec = &SessionRecord{
				ID:      e.sessionID,
				Summary: defaultSummary,
				CWD:     e.cwd,
			}
			records[e.sessionID] = rec
			order = append(order, e.sessionID)
		}

		switch e.kind {
		case entrySummary:
			if e.summary != "" {
				rec.Summary = e.summary
			}
		case entryUserMessage:
			if rec.Summary == defaultSummary &&
				!isCommandMessage(e.text) &&
				strings.TrimSpace(e.text) != "" {
				rec.Summary = truncate(e.text, summaryMaxLen)
			}
		}

		rec.MessageCount++
		if ns := e.timestamp.UnixNano(); !e.timestamp.IsZero() &&
			ns > rec.lastActivity {
			rec.lastActivity = ns
			rec.LastActivity = timeutil.Format(e.timestamp)
		}
		if rec.CWD == "" {
			rec.CWD = e.cwd
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}

	out := make([]SessionRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *records[id])
	}
	return out, nil
}

// ListSessions aggregates a project's sessions across all log
// files, newest file first, deduplicated by id, sorted by last
// activity descending, then paginated. An early exit stops
// scanning once enough unique sessions exist to fill the page
// with headroom and at least min(3, fileCount) files have been
// read; for small histories every file is read, so the page is
// exact.
func (s *Store) ListSessions(
	identifier string, limit, offset int,
) (SessionPage, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	files, err := s.logFiles(identifier)
	if err != nil {
		return SessionPage{}, err
	}

	minFiles := min(3, len(files))
	target := 2 * (limit + offset)

	var (
		merged = make(map[string]*SessionRecord)
		order  []string
	)
	for i, f := range files {
		recs, err := ParseSessionLog(f.path)
		if err != nil {
			log.Printf("parsing %s: %v", f.path, err)
			continue
		}
		for _, r := range recs {
			mergeRecord(merged, &order, r)
		}
		if len(merged) >= target && i+1 >= minFiles {
			break
		}
	}

	all := make([]SessionRecord, 0, len(order))
	for _, id := range order {
		all = append(all, *merged[id])
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].lastActivity > all[j].lastActivity
	})

	total := len(all)
	start := min(offset, total)
	end := min(offset+limit, total)
	return SessionPage{
		Sessions: all[start:end],
		Total:    total,
		HasMore:  offset+limit < total,
	}, nil
}

// IsEmpty reports whether a project has no sessions at all.
func (s *Store) IsEmpty(identifier string) (bool, error) {
	files, err := s.logFiles(identifier)
	if err != nil {
		return false, err
	}
	for _, f := range files {
		recs, err := ParseSessionLog(f.path)
		if err != nil {
			log.Printf("parsing %s: %v", f.path, err)
			continue
		}
		if len(recs) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// mergeRecord folds r into the cross-file collection. Files are
// processed newest first, so existing fields win except where a
// later file contributes what is still missing.
func mergeRecord(
	merged map[string]*SessionRecord, order *[]string,
	r SessionRecord,
) {
	existing, ok := merged[r.ID]
	if !ok {
		rec := r
		merged[r.ID] = &rec
		*order = append(*order, r.ID)
		return
	}

	existing.MessageCount += r.MessageCount
	if r.lastActivity > existing.lastActivity {
		existing.lastActivity = r.lastActivity
		existing.LastActivity = r.LastActivity
	}
	if existing.Summary == defaultSummary &&
		r.Summary != defaultSummary {
		existing.Summary = r.Summary
	}
	if existing.CWD == "" {
		existing.CWD = r.CWD
	}
}

// truncate caps s at maxLen characters, not bytes, so a
// multi-byte rune is never split.
func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}

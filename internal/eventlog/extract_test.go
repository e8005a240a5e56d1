package eventlog

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mbergquist/agentdirs/internal/testjsonl"
)

func TestExtractDirectoryMissingProject(t *testing.T) {
	s := newTestStore(t)

	got := s.ExtractDirectory("-work-my-app")
	want := strings.ReplaceAll(
		"-work-my-app", "-", string(filepath.Separator),
	)
	assert.Equal(t, want, got)
}

func TestExtractDirectoryNoLogFiles(t *testing.T) {
	s := newTestStore(t)
	writeLog(t, s, "-work-app", "notes.txt", "not a log", time.Now())

	got := s.ExtractDirectory("-work-app")
	assert.Equal(t, DecodeIdentifier("-work-app"), got)
}

func TestExtractDirectorySingleValue(t *testing.T) {
	s := newTestStore(t)
	writeLog(t, s, "-work-app", "a.jsonl", testjsonl.JoinJSONL(
		testjsonl.EventJSON("s1", "/work/app", ts(1, 0)),
		testjsonl.EventJSON("s1", "/work/app", ts(1, 1)),
	), time.Now())

	assert.Equal(t, "/work/app", s.ExtractDirectory("-work-app"))
}

func TestExtractDirectoryRecencyWins(t *testing.T) {
	// Frequencies {A:3, B:1}, B most recent: 1 >= 0.25*3, so
	// recency wins.
	s := newTestStore(t)
	writeLog(t, s, "-work-app", "a.jsonl", testjsonl.JoinJSONL(
		testjsonl.EventJSON("s1", "/work/a", ts(1, 0)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 1)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 2)),
		testjsonl.EventJSON("s2", "/work/b", ts(2, 0)),
	), time.Now())

	assert.Equal(t, "/work/b", s.ExtractDirectory("-work-app"))
}

func TestExtractDirectoryFrequencyWinsBelowThreshold(t *testing.T) {
	// Frequencies {A:5, B:1}, B most recent: 1 < 0.25*5, so the
	// frequent value wins.
	s := newTestStore(t)
	lines := []string{
		testjsonl.EventJSON("s1", "/work/a", ts(1, 0)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 1)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 2)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 3)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 4)),
		testjsonl.EventJSON("s2", "/work/b", ts(2, 0)),
	}
	writeLog(t, s, "-work-app", "a.jsonl",
		testjsonl.JoinJSONL(lines...), time.Now())

	assert.Equal(t, "/work/a", s.ExtractDirectory("-work-app"))
}

func TestExtractDirectoryConfigurableThreshold(t *testing.T) {
	// Same {A:3, B:1} history, threshold raised to 0.5: recency
	// no longer qualifies.
	s := NewStore(t.TempDir(), 0.5)
	writeLog(t, s, "-work-app", "a.jsonl", testjsonl.JoinJSONL(
		testjsonl.EventJSON("s1", "/work/a", ts(1, 0)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 1)),
		testjsonl.EventJSON("s1", "/work/a", ts(1, 2)),
		testjsonl.EventJSON("s2", "/work/b", ts(2, 0)),
	), time.Now())

	assert.Equal(t, "/work/a", s.ExtractDirectory("-work-app"))
}

func TestExtractDirectorySkipsMalformedLines(t *testing.T) {
	s := newTestStore(t)
	content := "{broken json\n" +
		testjsonl.EventJSON("s1", "/work/app", ts(1, 0)) + "\n" +
		"also broken\n"
	writeLog(t, s, "-work-app", "a.jsonl", content, time.Now())

	assert.Equal(t, "/work/app", s.ExtractDirectory("-work-app"))
}

func TestExtractDirectoryMissingTimestamps(t *testing.T) {
	// All timestamps absent: extraction still settles on a value
	// instead of returning empty.
	s := newTestStore(t)
	writeLog(t, s, "-work-app", "a.jsonl", testjsonl.JoinJSONL(
		testjsonl.EventJSON("s1", "/work/app", ""),
		testjsonl.EventJSON("s1", "/work/app", ""),
	), time.Now())

	assert.Equal(t, "/work/app", s.ExtractDirectory("-work-app"))
}

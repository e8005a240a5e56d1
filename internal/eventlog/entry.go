package eventlog

import (
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mbergquist/agentdirs/internal/timeutil"
)

// entryKind tags the recognized shapes of an event-log line.
// Unrecognized or malformed lines decode to entrySkip rather
// than failing the scan.
type entryKind int

const (
	entrySkip entryKind = iota
	entryEvent
	entrySummary
	entryUserMessage
)

// logEntry is one decoded event-log line.
type logEntry struct {
	kind      entryKind
	sessionID string
	cwd       string
	timestamp time.Time
	summary   string // entrySummary only
	text      string // entryUserMessage only
}

// decodeEntry decodes a JSONL line defensively. Fields are
// optional everywhere; a missing timestamp is the zero time.
func decodeEntry(line string) logEntry {
	if !gjson.Valid(line) {
		return logEntry{kind: entrySkip}
	}

	e := logEntry{
		kind:      entryEvent,
		sessionID: gjson.Get(line, "sessionId").Str,
		cwd:       gjson.Get(line, "cwd").Str,
		timestamp: timeutil.Parse(gjson.Get(line, "timestamp").Str),
	}

	if gjson.Get(line, "type").Str == "summary" {
		e.kind = entrySummary
		e.summary = gjson.Get(line, "summary").Str
		return e
	}

	if gjson.Get(line, "message.role").Str == "user" {
		content := gjson.Get(line, "message.content")
		if content.Type == gjson.String {
			e.kind = entryUserMessage
			e.text = content.Str
		}
	}
	return e
}

// isCommandMessage reports whether user text is wrapped in the
// assistant CLI's command markup and thus not a real prompt.
func isCommandMessage(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<command-name>") ||
		strings.HasPrefix(trimmed, "<command-message>")
}

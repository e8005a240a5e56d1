// Package testjsonl provides shared JSONL fixture builders for
// event-log test data. Used by the eventlog and project test
// packages.
package testjsonl

import (
	"encoding/json"
	"strings"
)

// EventJSON returns a plain session event as a JSON string.
// Empty fields are omitted so tests can exercise partial lines.
func EventJSON(sessionID, cwd, timestamp string) string {
	m := map[string]any{}
	if sessionID != "" {
		m["sessionId"] = sessionID
	}
	if cwd != "" {
		m["cwd"] = cwd
	}
	if timestamp != "" {
		m["timestamp"] = timestamp
	}
	return mustMarshal(m)
}

// SummaryJSON returns a summary event as a JSON string.
func SummaryJSON(sessionID, summary, timestamp string) string {
	m := map[string]any{
		"type":    "summary",
		"summary": summary,
	}
	if sessionID != "" {
		m["sessionId"] = sessionID
	}
	if timestamp != "" {
		m["timestamp"] = timestamp
	}
	return mustMarshal(m)
}

// UserMessageJSON returns a user message event as a JSON string.
func UserMessageJSON(
	sessionID, content, timestamp string, cwd ...string,
) string {
	m := map[string]any{
		"message": map[string]any{
			"role":    "user",
			"content": content,
		},
	}
	if sessionID != "" {
		m["sessionId"] = sessionID
	}
	if timestamp != "" {
		m["timestamp"] = timestamp
	}
	if len(cwd) > 0 {
		m["cwd"] = cwd[0]
	}
	return mustMarshal(m)
}

// CommandMessageJSON returns a user message wrapped in command
// markup, which summary derivation must skip.
func CommandMessageJSON(sessionID, name, timestamp string) string {
	content := "<command-name>" + name + "</command-name>"
	return UserMessageJSON(sessionID, content, timestamp)
}

// JoinJSONL joins JSON strings into newline-delimited content
// with a trailing newline.
func JoinJSONL(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func mustMarshal(m map[string]any) string {
	b, err := json.Marshal(m)
	if err != nil {
		panic(err)
	}
	return string(b)
}

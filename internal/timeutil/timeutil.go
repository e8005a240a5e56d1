// Package timeutil provides shared timestamp formatting and parsing
// helpers. Timestamps are serialized as RFC3339Nano in UTC; zero times
// map to empty strings / nil pointers so JSON consumers can tell
// "unknown" from epoch.
package timeutil

import "time"

// Format returns t as RFC3339Nano in UTC, or "" for the zero time.
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// Ptr returns a pointer to the formatted timestamp, or nil for the
// zero time.
func Ptr(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := Format(t)
	return &s
}

// parseLayouts are tried in order by Parse. Event logs mostly carry
// RFC3339 with or without sub-second precision, but a few producers
// omit the zone or use a space separator.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse decodes a timestamp string leniently. It returns the zero
// time when s is empty or matches none of the known layouts.
func Parse(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

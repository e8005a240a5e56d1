package eventlog

import (
	"bufio"
	"log"
	"os"
	"strings"
	"time"
)

// ExtractDirectory infers a project's real working directory
// from its log history. Entries carry the cwd the assistant ran
// in; histories are noisy (moved projects, odd one-off runs), so
// the most recent cwd wins unless its occurrence count is
// negligible next to the most frequent one. Extraction never
// fails: any unreadable state falls back to decoding the
// identifier itself.
func (s *Store) ExtractDirectory(identifier string) string {
	files, err := s.logFiles(identifier)
	if err != nil {
		log.Printf("extracting directory for %s: %v", identifier, err)
		return DecodeIdentifier(identifier)
	}
	if len(files) == 0 {
		return DecodeIdentifier(identifier)
	}

	var (
		counts    = make(map[string]int)
		order     []string
		latestCwd string
		latestTS  time.Time
	)

	for _, f := range files {
		if err := scanCwds(f.path, func(cwd string, ts time.Time) {
			if _, seen := counts[cwd]; !seen {
				order = append(order, cwd)
			}
			counts[cwd]++
			if latestCwd == "" || ts.After(latestTS) {
				latestCwd = cwd
				latestTS = ts
			}
		}); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Printf("scanning %s: %v", f.path, err)
			return DecodeIdentifier(identifier)
		}
	}

	switch len(order) {
	case 0:
		return DecodeIdentifier(identifier)
	case 1:
		return order[0]
	}

	maxCwd, maxCount := order[0], 0
	for _, cwd := range order {
		if counts[cwd] > maxCount {
			maxCwd, maxCount = cwd, counts[cwd]
		}
	}

	// Recency wins when not negligible relative to frequency.
	if float64(counts[latestCwd]) >=
		s.recencyThreshold*float64(maxCount) {
		return latestCwd
	}
	return maxCwd
}

// scanCwds streams a log file line by line, invoking fn for
// every well-formed entry that carries a cwd. Malformed lines
// are skipped silently.
func scanCwds(
	path string, fn func(cwd string, ts time.Time),
) error {
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
		e := decodeEntry(line)
		if e.kind == entrySkip || e.cwd == "" {
			continue
		}
		fn(e.cwd, e.timestamp)
	}
	return scanner.Err()
}

package provision

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// maxSymlinkWalk bounds the upward symlink-verification walk as
// defense in depth on top of the visited-set cycle detection.
const maxSymlinkWalk = 20

// SecurePath joins a validated name onto a validated root and
// proves the result cannot escape the root, first by a lexical
// bound check and then by resolving the symlink chain.
func SecurePath(root, name string) (string, error) {
	abs := filepath.Join(root, name)

	if abs != root && !strings.HasPrefix(
		abs, root+string(filepath.Separator),
	) {
		return "", newError(
			KindSecurityViolation, abs, root,
			"resolved path escapes workspace root",
		)
	}

	if err := verifyNoSymlinkEscape(abs, root); err != nil {
		return "", err
	}
	return abs, nil
}

// verifyNoSymlinkEscape walks from path up toward root, at each
// step resolving the current path to its symlink-free form and
// checking it still falls under root. A segment that does not
// exist yet is fine — new directories are expected below an
// existing root — so the walk continues at the parent. Cycles
// are caught by a visited set over both the pre- and
// post-resolution path at every step.
func verifyNoSymlinkEscape(path, root string) error {
	sep := string(filepath.Separator)
	visited := make(map[string]bool)
	current := path

	for i := 0; i < maxSymlinkWalk; i++ {
		if visited[current] {
			return newError(
				KindCyclicSymlink, current, root,
				"symlink cycle detected",
			)
		}
		visited[current] = true

		resolved, err := filepath.EvalSymlinks(current)
		if err != nil {
			if os.IsNotExist(err) {
				parent := filepath.Dir(current)
				if parent == current ||
					(parent != root &&
						!strings.HasPrefix(parent, root+sep)) {
					// Walked past the root without finding
					// anything on disk: nothing can escape.
					return nil
				}
				current = parent
				continue
			}
			if errors.Is(err, syscall.ELOOP) {
				return newError(
					KindCyclicSymlink, current, root,
					"symlink cycle detected",
				)
			}
			return newError(
				KindSecurityCheckFailed, current, root,
				"resolving path: "+err.Error(),
			)
		}

		if resolved != current && visited[resolved] {
			return newError(
				KindCyclicSymlink, current, root,
				"symlink cycle detected",
			)
		}
		visited[resolved] = true

		if resolved != root && !strings.HasPrefix(
			resolved, root+sep,
		) {
			return newError(
				KindSymlinkEscape, path, root,
				"path resolves outside workspace root",
			)
		}
		return nil
	}

	return newError(
		KindCyclicSymlink, path, root,
		"symlink walk exceeded iteration limit",
	)
}

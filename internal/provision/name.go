package provision

import (
	"path"
	"strings"
)

// ValidateName checks a user-supplied project name and returns
// the final path component to provision under the root. The
// traversal check runs over the whole raw string, not just the
// basename, under both separator conventions: a ".." hiding in
// the middle of the input must be rejected even though the
// basename alone would look harmless.
func ValidateName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	// Normalize to forward slashes so one pass covers both
	// Windows- and Unix-style input.
	slashed := strings.ReplaceAll(trimmed, "\\", "/")

	name := path.Base(slashed)
	if name == "" || name == "." || name == ".." || name == "/" {
		return "", newError(
			KindInvalidName, raw, "",
			"invalid project name",
		)
	}

	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", newError(
				KindTraversalAttempt, raw, "",
				"path traversal attempt in project name",
			)
		}
	}

	// The cleaned form must match the input (one trailing
	// separator tolerated): "a//b", "a/./b" and friends are
	// smuggled-normalization attempts.
	candidate := slashed
	if len(candidate) > 1 && strings.HasSuffix(candidate, "/") {
		candidate = candidate[:len(candidate)-1]
	}
	if path.Clean(candidate) != candidate {
		return "", newError(
			KindTraversalAttempt, raw, "",
			"project name does not normalize to itself",
		)
	}

	return name, nil
}

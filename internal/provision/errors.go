// Package provision validates and creates project directories
// under a configured workspace root, defending against path
// traversal and symlink escapes. Every failure carries a Kind so
// callers can distinguish user mistakes from security violations
// and filesystem exhaustion.
package provision

import (
	"errors"
	"fmt"
)

// Kind classifies a provisioning failure.
type Kind string

const (
	// Input validation.
	KindInvalidName      Kind = "invalid_name"
	KindTraversalAttempt Kind = "traversal_attempt"

	// Workspace root validation.
	KindNotAbsolute     Kind = "not_absolute"
	KindSystemDirectory Kind = "system_directory"
	KindHomeDirectory   Kind = "home_directory"
	KindRootDirectory   Kind = "root_directory"

	// Path security checks.
	KindSecurityViolation   Kind = "security_violation"
	KindSymlinkEscape       Kind = "symlink_escape"
	KindCyclicSymlink       Kind = "cyclic_symlink"
	KindSecurityCheckFailed Kind = "security_check_failed"

	// Registration.
	KindAlreadyRegistered Kind = "already_registered"

	// Directory creation.
	KindOutOfSpace         Kind = "out_of_space"
	KindReadOnlyFilesystem Kind = "read_only_filesystem"
	KindResourceExhausted  Kind = "resource_exhausted"
	KindNameTooLong        Kind = "name_too_long"
	KindPermissionDenied   Kind = "permission_denied"
	KindNotADirectory      Kind = "not_a_directory"
)

// Error is a typed provisioning failure. Path is the offending
// path (or raw input), Root the workspace root when relevant.
type Error struct {
	Kind   Kind
	Path   string
	Root   string
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %q", e.Detail, e.Path)
	if e.Root != "" {
		msg += fmt.Sprintf(" (root %q)", e.Root)
	}
	return msg
}

// KindOf returns the Kind of err, or "" if err is not a
// provisioning error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}

// IsKind reports whether err is a provisioning error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

func newError(k Kind, path, root, detail string) *Error {
	return &Error{Kind: k, Path: path, Root: root, Detail: detail}
}

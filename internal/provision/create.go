package provision

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// EnsureDir creates path (and missing intermediates) with
// owner-only permissions. It reports whether a directory was
// actually created: an existing directory is fine and reports
// false, so re-provisioning is idempotent.
func EnsureDir(path string) (created bool, err error) {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return false, newError(
				KindNotADirectory, path, "",
				"path exists but is not a directory",
			)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(path, 0o700); err != nil {
		return false, classifyCreateError(path, err)
	}
	return true, nil
}

// classifyCreateError maps well-known filesystem errnos onto
// distinct user-facing kinds instead of one generic failure.
func classifyCreateError(path string, err error) error {
	kinds := []struct {
		errno  syscall.Errno
		kind   Kind
		detail string
	}{
		{syscall.ENOSPC, KindOutOfSpace,
			"no space left on device creating directory"},
		{syscall.EROFS, KindReadOnlyFilesystem,
			"read-only filesystem creating directory"},
		{syscall.EMFILE, KindResourceExhausted,
			"too many open files creating directory"},
		{syscall.ENFILE, KindResourceExhausted,
			"too many open files creating directory"},
		{syscall.ENAMETOOLONG, KindNameTooLong,
			"path name too long creating directory"},
		{syscall.EACCES, KindPermissionDenied,
			"permission denied creating directory"},
		{syscall.EPERM, KindPermissionDenied,
			"permission denied creating directory"},
		{syscall.ENOTDIR, KindNotADirectory,
			"path component is not a directory"},
	}
	for _, k := range kinds {
		if errors.Is(err, k.errno) {
			return newError(k.kind, path, "", k.detail)
		}
	}
	return fmt.Errorf("creating %s: %w", path, err)
}

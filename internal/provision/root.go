package provision

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

// systemDirs is the per-OS deny list of directories that must
// never be used as a workspace root, directly or as an ancestor.
func systemDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Windows`,
			`C:\Program Files`,
			`C:\Program Files (x86)`,
			`C:\ProgramData`,
		}
	case "darwin":
		return []string{
			"/etc", "/usr", "/var", "/boot", "/bin", "/sbin",
			"/root", "/dev", "/lib", "/opt",
			"/System", "/Library", "/private/etc",
		}
	default:
		return []string{
			"/etc", "/usr", "/var", "/sys", "/proc", "/boot",
			"/bin", "/sbin", "/root", "/dev", "/lib", "/opt",
		}
	}
}

// ValidateRoot checks a raw workspace-root value and returns its
// normalized form. An existing root is canonicalized through its
// symlinks and re-checked in resolved form, so a symlinked root
// cannot point into a denied location; a root that does not
// exist yet keeps its cleaned form so it can be created on first
// provision.
func ValidateRoot(raw string) (string, error) {
	if !filepath.IsAbs(raw) {
		return "", newError(
			KindNotAbsolute, raw, "",
			"workspace root must be an absolute path",
		)
	}
	root := filepath.Clean(raw)
	if err := checkRootDenied(root); err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		if resolved != root {
			if err := checkRootDenied(resolved); err != nil {
				return "", err
			}
		}
		root = resolved
	} else if !os.IsNotExist(err) {
		return "", newError(
			KindSecurityCheckFailed, root, "",
			"resolving workspace root: "+err.Error(),
		)
	}
	return root, nil
}

// checkRootDenied rejects roots that are the home directory, the
// filesystem root, or inside a system directory.
func checkRootDenied(root string) error {
	if home, err := os.UserHomeDir(); err == nil && root == home {
		return newError(
			KindHomeDirectory, root, "",
			"workspace root must not be the home directory",
		)
	}
	if root == filepath.Dir(root) {
		return newError(
			KindRootDirectory, root, "",
			"workspace root must not be the filesystem root",
		)
	}
	for _, dir := range systemDirs() {
		if root == dir ||
			strings.HasPrefix(root, dir+string(filepath.Separator)) {
			return newError(
				KindSystemDirectory, root, "",
				"workspace root inside system directory "+dir,
			)
		}
	}
	return nil
}

// RootCache memoizes ValidateRoot per distinct raw value so an
// unchanged environment setting is validated once per process.
// Concurrent population of the same key recomputes the same
// value, so races are harmless.
type RootCache struct {
	mu    sync.RWMutex
	valid map[string]string
}

// NewRootCache returns an empty RootCache.
func NewRootCache() *RootCache {
	return &RootCache{valid: make(map[string]string)}
}

// Resolve validates raw, caching successful validations.
func (c *RootCache) Resolve(raw string) (string, error) {
	c.mu.RLock()
	root, ok := c.valid[raw]
	c.mu.RUnlock()
	if ok {
		return root, nil
	}

	root, err := ValidateRoot(raw)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.valid[raw] = root
	c.mu.Unlock()
	return root, nil
}

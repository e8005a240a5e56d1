package eventlog

import (
	"path/filepath"
	"strings"
)

// identifierReplacer maps both separator conventions onto the
// reserved identifier character.
var identifierReplacer = strings.NewReplacer("/", "-", "\\", "-")

// EncodePath converts an absolute project path into its store
// identifier by replacing path separators with "-". The mapping
// matches the external store's directory naming and must not be
// changed.
func EncodePath(abs string) string {
	return identifierReplacer.Replace(abs)
}

// DecodeIdentifier converts an identifier back into a native
// path. The encoding is lossy (a "-" in a directory name is
// indistinguishable from a separator), so this is only a
// fallback for projects with no usable log history.
func DecodeIdentifier(identifier string) string {
	return strings.ReplaceAll(
		identifier, "-", string(filepath.Separator),
	)
}

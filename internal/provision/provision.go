package provision

// Provision composes the security pipeline for an already
// validated name and root: compose and bound-check the absolute
// path, verify the symlink chain, then create the directory.
// No filesystem mutation happens until every check has passed.
func Provision(name, root string) (abs string, created bool, err error) {
	abs, err = SecurePath(root, name)
	if err != nil {
		return "", false, err
	}
	created, err = EnsureDir(abs)
	if err != nil {
		return "", false, err
	}
	return abs, created, nil
}

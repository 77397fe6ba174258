package smtools

import (
	"fmt"
	"path/filepath"
)

// ContainsFile reports whether the file target lives in dir. When recursive
// is false target must be a direct child of dir; otherwise dir may be any
// ancestor of target.
//
// target must be an existing regular file (ErrInvalidArgument) and dir an
// existing directory (ErrNotADirectory). Both are checked before comparing.
func (t *Toolkit) ContainsFile(target, dir string, recursive bool) (bool, error) {
	f, err := t.Resolve(target)
	if err != nil {
		return false, err
	}
	if !f.IsFile() {
		return false, fmt.Errorf("%s is not a valid file path: %w", f, ErrInvalidArgument)
	}

	d, err := t.requireDir(dir)
	if err != nil {
		return false, err
	}

	return contains(f, d, recursive), nil
}

// ContainsDir reports whether the directory target lives in dir, with the
// same direct/recursive semantics as ContainsFile. A directory never
// contains itself.
//
// Both target and dir must be existing directories (ErrNotADirectory).
func (t *Toolkit) ContainsDir(target, dir string, recursive bool) (bool, error) {
	sub, err := t.requireDir(target)
	if err != nil {
		return false, err
	}

	d, err := t.requireDir(dir)
	if err != nil {
		return false, err
	}

	return contains(sub, d, recursive), nil
}

// contains compares canonical paths only; a path is never its own ancestor.
func contains(target, dir *Path, recursive bool) bool {
	if target.String() == dir.String() {
		return false
	}

	parent := target.Parent()
	if !recursive {
		return parent == dir.String()
	}

	for {
		if parent == dir.String() {
			return true
		}
		next := filepath.Dir(parent)
		if next == parent {
			return false
		}
		parent = next
	}
}

package smtools

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Toolkit answers size, containment and name queries against a Filesystem.
// It holds no state beyond its dependencies: every call walks the live tree.
type Toolkit struct {
	fsys   Filesystem
	cwd    string
	ignore Ignorer
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithIgnorer excludes entries matched by ig from every walk.
func WithIgnorer(ig Ignorer) Option {
	return func(t *Toolkit) {
		t.ignore = ig
	}
}

// NewToolkit creates a Toolkit over fsys. cwd is the absolute directory that
// relative paths are resolved against.
func NewToolkit(fsys Filesystem, cwd string, opts ...Option) *Toolkit {
	t := &Toolkit{
		fsys: fsys,
		cwd:  cwd,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Cwd returns the working directory relative paths are resolved against.
func (t *Toolkit) Cwd() string {
	return t.cwd
}

// Normalize returns the canonical absolute form of raw.
func (t *Toolkit) Normalize(raw string) string {
	return Normalize(t.fsys, t.cwd, raw)
}

// Resolve normalizes raw and stats the result.
// A path that does not exist is not an error; the returned Path reports
// Exists() == false.
func (t *Toolkit) Resolve(raw string) (*Path, error) {
	abs := t.Normalize(raw)

	info, err := t.fsys.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return NewPath(abs, nil), nil
		}
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	return NewPath(abs, info), nil
}

// requireDir resolves raw and checks that it is an existing directory.
func (t *Toolkit) requireDir(raw string) (*Path, error) {
	p, err := t.Resolve(raw)
	if err != nil {
		return nil, err
	}
	if !p.IsDir() {
		return nil, fmt.Errorf("%s is not a valid directory path: %w", p, ErrNotADirectory)
	}
	return p, nil
}

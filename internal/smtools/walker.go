package smtools

import (
	"fmt"
	"io/fs"
	"path/filepath"

	kfs "github.com/kr/fs"
)

// Entry is a single item produced by a Walker. Info is gathered with lstat
// semantics: a symlink is reported as a symlink, never as its target.
type Entry struct {
	Path string
	Info fs.FileInfo
}

// Name returns the base name of the entry.
func (e Entry) Name() string {
	return filepath.Base(e.Path)
}

// Kind reports the entry type. A symlink is KindSymlink regardless of target.
func (e Entry) Kind() Kind { return kindOf(e.Info) }

// IsFile reports whether the entry is a regular file.
func (e Entry) IsFile() bool { return e.Kind() == KindFile }

// IsDir reports whether the entry is a directory. False for a symlink to one.
func (e Entry) IsDir() bool { return e.Kind() == KindDirectory }

// Size returns the size in bytes reported by the filesystem.
func (e Entry) Size() int64 {
	return e.Info.Size()
}

// Walker lazily enumerates the entries below a root directory, one
// filesystem step per call to Next. Directories are visited depth-first in
// pre-order, children in lexical order. Symlinks are never descended.
//
// A Walker cannot be restarted. Once Next returns false it keeps returning
// false, and Err reports the failure that stopped it, if any.
type Walker struct {
	root      string
	recursive bool
	ignore    Ignorer
	w         *kfs.Walker
	cur       Entry
	err       error
	done      bool
}

// Walk returns a Walker over root. If recursive is false only the direct
// children of root are produced.
//
// Walk fails with ErrNotFound if root does not exist and with
// ErrNotADirectory if it is not a directory.
func (t *Toolkit) Walk(root string, recursive bool) (*Walker, error) {
	p, err := t.Resolve(root)
	if err != nil {
		return nil, err
	}
	if !p.Exists() {
		return nil, fmt.Errorf("walk root %s: %w", p, ErrNotFound)
	}
	if !p.IsDir() {
		return nil, fmt.Errorf("walk root %s is not a valid directory path: %w", p, ErrNotADirectory)
	}

	w := kfs.WalkFS(p.String(), t.fsys)
	// The first step produces the root itself, which is never yielded.
	w.Step()
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("walk root %s: %w", p, err)
	}

	return &Walker{
		root:      p.String(),
		recursive: recursive,
		ignore:    t.ignore,
		w:         w,
	}, nil
}

// Root returns the canonical root of the walk.
func (w *Walker) Root() string {
	return w.root
}

// Next advances to the next entry. It returns false when the walk is
// exhausted or has failed.
func (w *Walker) Next() bool {
	if w.done {
		return false
	}

	for w.w.Step() {
		if err := w.w.Err(); err != nil {
			w.err = fmt.Errorf("walking %s: %w", w.w.Path(), err)
			break
		}

		path, info := w.w.Path(), w.w.Stat()

		if w.ignore != nil {
			rel, err := filepath.Rel(w.root, path)
			if err == nil && w.ignore.Match(rel, info.IsDir()) {
				if info.IsDir() {
					w.w.SkipDir()
				}
				continue
			}
		}

		if !w.recursive && info.IsDir() {
			w.w.SkipDir()
		}

		w.cur = Entry{Path: path, Info: info}
		return true
	}

	w.done = true
	w.cur = Entry{}
	return false
}

// Entry returns the entry produced by the last successful call to Next.
func (w *Walker) Entry() Entry {
	return w.cur
}

// Err returns the error that stopped the walk, or nil.
func (w *Walker) Err() error {
	return w.err
}

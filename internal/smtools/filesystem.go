package smtools

import (
	"io/fs"

	kfs "github.com/kr/fs"
)

// Filesystem provides the filesystem queries the toolkit needs.
// It abstracts the host filesystem so traversal can be tested in memory.
//
// The embedded kr/fs FileSystem (ReadDir, Lstat, Join) drives the walker;
// ReadDir must return entries sorted by name with lstat semantics.
type Filesystem interface {
	kfs.FileSystem

	// Stat returns file info for name, following symlinks.
	Stat(name string) (fs.FileInfo, error)

	// EvalSymlinks resolves every symlink in an absolute path and returns
	// it clean. Components are taken left to right and ".." steps back from
	// the resolved prefix, not from the literal text. Components that do not
	// exist are kept as they are, so the path itself need not exist.
	EvalSymlinks(path string) (string, error)
}

// Ignorer decides whether a walk entry is excluded from traversal.
// relativePath is relative to the walk root. An excluded directory is not
// descended into.
type Ignorer interface {
	Match(relativePath string, isDir bool) bool
}

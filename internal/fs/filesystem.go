package fs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/sys/symlink"

	"smtools/internal/smtools"
)

// OSFilesystem is the real filesystem implementation of smtools.Filesystem.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem that operates on the host filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// ReadDir returns lstat info for the entries of dirname, sorted by name.
func (m *OSFilesystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	entries, err := os.ReadDir(dirname)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", filepath.Join(dirname, entry.Name()), err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Lstat returns file info for name without following symlinks.
func (m *OSFilesystem) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

// Join joins path elements with the host separator.
func (m *OSFilesystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Stat returns file info for name, following symlinks.
func (m *OSFilesystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// EvalSymlinks resolves the symlinks in path one component at a time,
// scoped to the root of its volume. A ".." steps back from the resolved
// prefix. Missing components are accepted as-is.
func (m *OSFilesystem) EvalSymlinks(path string) (string, error) {
	vol := filepath.VolumeName(path)
	root := vol + string(filepath.Separator)

	cur := root
	for _, part := range strings.Split(filepath.ToSlash(path[len(vol):]), "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
			continue
		}

		// cur is already resolved, so only the new last element can be a link.
		next, err := symlink.FollowSymlinkInScope(filepath.Join(cur, part), root)
		if err != nil {
			return "", fmt.Errorf("resolving symlinks in %s: %w", path, err)
		}
		cur = next
	}
	return cur, nil
}

// Compile-time check that OSFilesystem implements smtools.Filesystem
var _ smtools.Filesystem = (*OSFilesystem)(nil)

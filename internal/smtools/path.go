package smtools

import (
	"io/fs"
	"path/filepath"
)

// Kind is the type of filesystem entry a path refers to.
type Kind int

const (
	KindNone      Kind = iota // path does not exist
	KindFile                  // regular file
	KindDirectory             // directory
	KindSymlink               // symbolic link, only seen with lstat semantics
	KindOther                 // device, socket, named pipe or similar
)

// String returns the lowercase name of k.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

func kindOf(info fs.FileInfo) Kind {
	if info == nil {
		return KindNone
	}
	mode := info.Mode()
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDirectory
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Path is a canonical absolute path with the file info captured when it was
// resolved. The path need not exist; Info is nil when it does not.
type Path struct {
	absPath string
	info    fs.FileInfo
}

// NewPath creates a Path from its components.
// This is primarily for use by Toolkit.Resolve and tests.
func NewPath(absPath string, info fs.FileInfo) *Path {
	return &Path{
		absPath: absPath,
		info:    info,
	}
}

// String returns the canonical absolute path.
func (p *Path) String() string {
	return p.absPath
}

// Name returns the last element of the path.
func (p *Path) Name() string {
	return filepath.Base(p.absPath)
}

// Parent returns the canonical parent directory.
func (p *Path) Parent() string {
	return filepath.Dir(p.absPath)
}

// Exists reports whether the path existed when it was resolved.
func (p *Path) Exists() bool {
	return p.info != nil
}

// Kind returns the entry kind, following symlinks.
func (p *Path) Kind() Kind {
	return kindOf(p.info)
}

// IsFile reports whether the resolved path is a regular file.
func (p *Path) IsFile() bool { return p.Kind() == KindFile }

// IsDir reports whether the resolved path is a directory.
func (p *Path) IsDir() bool { return p.Kind() == KindDirectory }

// Info returns the cached file info, or nil if the path does not exist.
func (p *Path) Info() fs.FileInfo {
	return p.info
}

// Normalize returns the canonical absolute form of raw. Relative paths are
// taken relative to cwd. Symlinks are resolved component by component before
// any ".." that follows them is applied, so "link/.." names the parent of the
// link's target. The path does not have to exist. If symlink resolution fails
// the lexically cleaned absolute path is returned, so Normalize never fails.
func Normalize(fsys Filesystem, cwd, raw string) string {
	p := raw
	if !filepath.IsAbs(p) {
		// Joined by hand: filepath.Join would clean ".." lexically.
		p = cwd + string(filepath.Separator) + p
	}

	resolved, err := fsys.EvalSymlinks(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return resolved
}

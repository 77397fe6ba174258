package testutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"smtools/internal/smtools"
)

// maxLinkHops bounds symlink resolution in the mock filesystem.
const maxLinkHops = 255

// MockFile represents a file, directory or symlink in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
	// LinkTarget is set for symlinks. Relative targets resolve against the
	// link's parent directory.
	LinkTarget string
}

func (f *MockFile) isSymlink() bool {
	return f.LinkTarget != ""
}

// MockFilesystem is an in-memory filesystem for testing.
// Paths are absolute and slash-separated. The root "/" always exists.
type MockFilesystem struct {
	files map[string]*MockFile
	errs  map[string]error
}

// NewMockFilesystem creates a new mock filesystem containing only "/".
func NewMockFilesystem() *MockFilesystem {
	m := &MockFilesystem{
		files: make(map[string]*MockFile),
		errs:  make(map[string]error),
	}
	m.files["/"] = &MockFile{Permissions: 0755, ModTime: time.Now(), IsDirectory: true}
	return m
}

// AddFile adds a regular file, creating missing parent directories.
func (m *MockFilesystem) AddFile(path string, content []byte) {
	path = filepath.Clean(path)
	m.AddDirectory(filepath.Dir(path))
	m.files[path] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     time.Now(),
	}
}

// AddDirectory adds a directory and any missing parents.
func (m *MockFilesystem) AddDirectory(path string) {
	path = filepath.Clean(path)
	for p := path; ; p = filepath.Dir(p) {
		if _, ok := m.files[p]; !ok {
			m.files[p] = &MockFile{Permissions: 0755, ModTime: time.Now(), IsDirectory: true}
		}
		if p == filepath.Dir(p) {
			return
		}
	}
}

// AddSymlink adds a symlink at path pointing to target.
func (m *MockFilesystem) AddSymlink(path, target string) {
	path = filepath.Clean(path)
	m.AddDirectory(filepath.Dir(path))
	m.files[path] = &MockFile{
		Permissions: 0777,
		ModTime:     time.Now(),
		LinkTarget:  target,
	}
}

// Remove deletes path. Children of a removed directory are left orphaned,
// which is enough to simulate concurrent deletion.
func (m *MockFilesystem) Remove(path string) {
	delete(m.files, filepath.Clean(path))
}

// SetReadDirError makes ReadDir fail for path with err.
func (m *MockFilesystem) SetReadDirError(path string, err error) {
	m.errs[filepath.Clean(path)] = err
}

// ReadDir returns the entries of dirname sorted by name, without following
// symlinks.
func (m *MockFilesystem) ReadDir(dirname string) ([]os.FileInfo, error) {
	dirname = filepath.Clean(dirname)
	if err, ok := m.errs[dirname]; ok {
		return nil, &fs.PathError{Op: "readdir", Path: dirname, Err: err}
	}

	dir, ok := m.files[dirname]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: dirname, Err: fs.ErrNotExist}
	}
	if !dir.IsDirectory {
		return nil, &fs.PathError{Op: "readdir", Path: dirname, Err: errors.New("not a directory")}
	}

	var names []string
	for p := range m.files {
		if p != dirname && filepath.Dir(p) == dirname {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)

	infos := make([]os.FileInfo, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dirname, name)
		infos = append(infos, newMockFileInfo(p, m.files[p]))
	}
	return infos, nil
}

// Lstat returns info for name without following a final symlink.
func (m *MockFilesystem) Lstat(name string) (os.FileInfo, error) {
	name = filepath.Clean(name)
	file, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return newMockFileInfo(name, file), nil
}

// Join joins path elements.
func (m *MockFilesystem) Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Stat returns info for name, following symlinks.
func (m *MockFilesystem) Stat(name string) (fs.FileInfo, error) {
	resolved, err := m.EvalSymlinks(name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	file, ok := m.files[resolved]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return newMockFileInfo(resolved, file), nil
}

// EvalSymlinks resolves symlinks component by component. A ".." steps back
// from the resolved prefix. Missing components are kept as they are.
func (m *MockFilesystem) EvalSymlinks(path string) (string, error) {
	parts := splitPath(path)
	cur := "/"
	hops := 0

	for len(parts) > 0 {
		part := parts[0]
		parts = parts[1:]

		switch part {
		case ".":
			continue
		case "..":
			cur = filepath.Dir(cur)
			continue
		}

		next := filepath.Join(cur, part)
		file, ok := m.files[next]
		if !ok || !file.isSymlink() {
			cur = next
			continue
		}

		hops++
		if hops > maxLinkHops {
			return "", fmt.Errorf("too many links in %s", path)
		}

		// Relative targets continue from the link's parent, which is cur.
		if filepath.IsAbs(file.LinkTarget) {
			cur = "/"
		}
		parts = append(splitPath(file.LinkTarget), parts...)
	}
	return cur, nil
}

// splitPath splits path into its raw components, keeping "." and "..".
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(filepath.ToSlash(path), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name     string
	size     int64
	mode     fs.FileMode
	modTime  time.Time
	mockFile *MockFile
}

func newMockFileInfo(path string, file *MockFile) *mockFileInfo {
	mode := file.Permissions
	switch {
	case file.IsDirectory:
		mode |= fs.ModeDir
	case file.isSymlink():
		mode |= fs.ModeSymlink
	}
	return &mockFileInfo{
		name:     filepath.Base(path),
		size:     int64(len(file.Content)),
		mode:     mode,
		modTime:  file.ModTime,
		mockFile: file,
	}
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.mode.IsDir() }
func (m *mockFileInfo) Sys() any           { return m.mockFile }

// Compile-time check
var _ smtools.Filesystem = (*MockFilesystem)(nil)

package smtools_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	osfs "smtools/internal/fs"
	"smtools/internal/smtools"
	"smtools/internal/testutil"
)

// newMockToolkit returns a toolkit over an in-memory filesystem with the
// working directory set to /home/user.
func newMockToolkit(t *testing.T, opts ...smtools.Option) (*smtools.Toolkit, *testutil.MockFilesystem) {
	t.Helper()
	fsys := testutil.NewMockFilesystem()
	fsys.AddDirectory("/home/user")
	return smtools.NewToolkit(fsys, "/home/user", opts...), fsys
}

// newDiskToolkit returns a toolkit over the host filesystem rooted at a
// canonical temp dir, which is also the working directory.
func newDiskToolkit(t *testing.T) (*smtools.Toolkit, string) {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return smtools.NewToolkit(osfs.NewOSFilesystem(), root), root
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), size), 0644))
}

func symlinkOrSkip(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

// scenarioTree builds root/sub/target.txt (10 bytes) and root/other.txt (5 bytes).
func scenarioTree(t *testing.T, root string) {
	t.Helper()
	writeFile(t, filepath.Join(root, "sub", "target.txt"), 10)
	writeFile(t, filepath.Join(root, "other.txt"), 5)
}

func collectWalk(t *testing.T, w *smtools.Walker) []string {
	t.Helper()
	var paths []string
	for w.Next() {
		paths = append(paths, w.Entry().Path)
	}
	require.NoError(t, w.Err())
	return paths
}

package smtools_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	osfs "smtools/internal/fs"
	"smtools/internal/smtools"
)

func TestToolkit_Walk(t *testing.T) {
	setup := func(t *testing.T, opts ...smtools.Option) *smtools.Toolkit {
		t.Helper()
		tk, fsys := newMockToolkit(t, opts...)
		fsys.AddFile("/r/a.txt", []byte("a"))
		fsys.AddFile("/r/sub/b.txt", []byte("bb"))
		fsys.AddFile("/r/sub/deep/c.txt", []byte("ccc"))
		fsys.AddFile("/r/z.txt", []byte("z"))
		return tk
	}

	t.Run("non-recursive yields direct children only", func(t *testing.T) {
		tk := setup(t)
		w, err := tk.Walk("/r", false)
		require.NoError(t, err)

		assert.Equal(t, []string{"/r/a.txt", "/r/sub", "/r/z.txt"}, collectWalk(t, w))
	})

	t.Run("recursive yields every descendant in pre-order", func(t *testing.T) {
		tk := setup(t)
		w, err := tk.Walk("/r", true)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"/r/a.txt",
			"/r/sub",
			"/r/sub/b.txt",
			"/r/sub/deep",
			"/r/sub/deep/c.txt",
			"/r/z.txt",
		}, collectWalk(t, w))
	})

	t.Run("entries carry kind, name and size", func(t *testing.T) {
		tk := setup(t)
		w, err := tk.Walk("/r/sub", false)
		require.NoError(t, err)

		require.True(t, w.Next())
		e := w.Entry()
		assert.Equal(t, "b.txt", e.Name())
		assert.True(t, e.IsFile())
		assert.EqualValues(t, 2, e.Size())

		require.True(t, w.Next())
		assert.True(t, w.Entry().IsDir())
		assert.Equal(t, smtools.KindDirectory, w.Entry().Kind())
	})

	t.Run("is not restartable", func(t *testing.T) {
		tk := setup(t)
		w, err := tk.Walk("/r", false)
		require.NoError(t, err)

		collectWalk(t, w)
		assert.False(t, w.Next())
		assert.False(t, w.Next())
		assert.Equal(t, smtools.Entry{}, w.Entry())
	})

	t.Run("empty directory yields nothing", func(t *testing.T) {
		tk, fsys := newMockToolkit(t)
		fsys.AddDirectory("/empty")
		w, err := tk.Walk("/empty", true)
		require.NoError(t, err)
		assert.Empty(t, collectWalk(t, w))
	})

	t.Run("missing root fails with not found", func(t *testing.T) {
		tk := setup(t)
		_, err := tk.Walk("/r/missing", true)
		require.Error(t, err)
		assert.True(t, errdefs.IsNotFound(err))
		assert.ErrorIs(t, err, smtools.ErrNotFound)
		assert.Contains(t, err.Error(), "/r/missing")
	})

	t.Run("file root fails with not a directory", func(t *testing.T) {
		tk := setup(t)
		_, err := tk.Walk("/r/a.txt", true)
		assert.ErrorIs(t, err, smtools.ErrNotADirectory)
	})

	t.Run("relative root resolves against cwd", func(t *testing.T) {
		tk, fsys := newMockToolkit(t)
		fsys.AddFile("/home/user/docs/x.txt", nil)
		w, err := tk.Walk("docs", false)
		require.NoError(t, err)
		assert.Equal(t, "/home/user/docs", w.Root())
		assert.Equal(t, []string{"/home/user/docs/x.txt"}, collectWalk(t, w))
	})

	t.Run("ignored entries and directories are skipped", func(t *testing.T) {
		ig, err := osfs.NewIgnoreMatcher([]string{"deep/", "z.txt"})
		require.NoError(t, err)
		tk := setup(t, smtools.WithIgnorer(ig))
		w, err := tk.Walk("/r", true)
		require.NoError(t, err)

		assert.Equal(t, []string{"/r/a.txt", "/r/sub", "/r/sub/b.txt"}, collectWalk(t, w))
	})
}

func TestToolkit_Walk_symlinks(t *testing.T) {
	t.Run("symlinked directories are yielded but not descended", func(t *testing.T) {
		tk, fsys := newMockToolkit(t)
		fsys.AddFile("/r/sub/f.txt", []byte("f"))
		fsys.AddSymlink("/r/sub/loop", "/r")

		w, err := tk.Walk("/r", true)
		require.NoError(t, err)

		var entries []smtools.Entry
		var paths []string
		for w.Next() {
			paths = append(paths, w.Entry().Path)
			entries = append(entries, w.Entry())
		}
		require.NoError(t, w.Err())
		assert.Equal(t, []string{"/r/sub", "/r/sub/f.txt", "/r/sub/loop"}, paths)

		assert.True(t, entries[0].IsDir())
		assert.True(t, entries[1].IsFile())
		loop := entries[2]
		assert.Equal(t, smtools.KindSymlink, loop.Kind())
		assert.False(t, loop.IsDir(), "a symlink to a directory is not a directory entry")
		assert.False(t, loop.IsFile())
	})

	t.Run("symlinked root is walked through its target", func(t *testing.T) {
		tk, fsys := newMockToolkit(t)
		fsys.AddFile("/data/real/f.txt", nil)
		fsys.AddSymlink("/home/user/alias", "/data/real")

		w, err := tk.Walk("alias", true)
		require.NoError(t, err)
		assert.Equal(t, "/data/real", w.Root())
		assert.Equal(t, []string{"/data/real/f.txt"}, collectWalk(t, w))
	})

	t.Run("cycles on disk terminate", func(t *testing.T) {
		tk, root := newDiskToolkit(t)
		writeFile(t, filepath.Join(root, "a", "f.txt"), 3)
		symlinkOrSkip(t, root, filepath.Join(root, "a", "back"))

		w, err := tk.Walk(root, true)
		require.NoError(t, err)
		assert.Equal(t, []string{
			filepath.Join(root, "a"),
			filepath.Join(root, "a", "back"),
			filepath.Join(root, "a", "f.txt"),
		}, collectWalk(t, w))
	})
}

func TestToolkit_Walk_failureMidWalk(t *testing.T) {
	tk, fsys := newMockToolkit(t)
	fsys.AddFile("/r/a/f.txt", nil)
	fsys.AddFile("/r/b/g.txt", nil)
	denied := errors.New("permission denied")
	fsys.SetReadDirError("/r/a", denied)

	w, err := tk.Walk("/r", true)
	require.NoError(t, err)

	require.True(t, w.Next())
	assert.Equal(t, "/r/a", w.Entry().Path)

	assert.False(t, w.Next(), "walk must stop at the first failure")
	assert.ErrorIs(t, w.Err(), denied)
	assert.Contains(t, w.Err().Error(), "/r/a")
	assert.False(t, w.Next())
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smtools/internal/smtools"
)

// run executes the CLI with an isolated config location and returns what
// it wrote to stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	home := t.TempDir()
	if os.Getenv("SMTOOLS_CONFIG_PATH") == "" {
		t.Setenv("SMTOOLS_CONFIG_PATH", filepath.Join(home, "smtools.toml"))
	}
	if os.Getenv("SMTOOLS_HOME") == "" {
		t.Setenv("SMTOOLS_HOME", home)
	}

	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// tree builds a canonical temp directory:
//
//	root/other.txt          5 bytes
//	root/sub/target.txt    10 bytes
//	root/sub/notes.txt      0 bytes
//	root/notes.txt          0 bytes
//	root/sub/build/
func tree(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	write := func(rel string, size int) {
		p := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte("x"), size), 0644))
	}
	write("other.txt", 5)
	write("sub/target.txt", 10)
	write("sub/notes.txt", 0)
	write("notes.txt", 0)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sub", "build"), 0755))
	return root
}

func TestRoot_Help(t *testing.T) {
	for name, args := range map[string][]string{
		"no subcommand":      nil,
		"unknown subcommand": {"bogus"},
	} {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, stdout, "Usage:")
			assert.Contains(t, stdout, "dir_size")
			assert.Contains(t, stdout, "dind")
		})
	}
}

func TestDirSize(t *testing.T) {
	root := tree(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "binary", args: []string{"dir_size", root}, want: "15.00000000 bytes\n"},
		{name: "alias", args: []string{"ds", root}, want: "15.00000000 bytes\n"},
		{name: "nested", args: []string{"dir_size", filepath.Join(root, "sub")}, want: "10.00000000 bytes\n"},
		{name: "iec", args: []string{"dir_size", "--format", "iec", root}, want: "15B\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestDirSize_DefaultsToWorkingDirectory(t *testing.T) {
	root := tree(t)
	chdir(t, filepath.Join(root, "sub"))

	stdout, _, err := run(t, "dir_size")
	require.NoError(t, err)
	assert.Equal(t, "10.00000000 bytes\n", stdout)
}

func TestDirSize_Errors(t *testing.T) {
	root := tree(t)

	t.Run("file argument", func(t *testing.T) {
		stdout, _, err := run(t, "dir_size", filepath.Join(root, "other.txt"))
		require.ErrorIs(t, err, smtools.ErrNotADirectory)
		assert.Contains(t, err.Error(), filepath.Join(root, "other.txt"))
		assert.Empty(t, stdout)
	})

	t.Run("missing path", func(t *testing.T) {
		stdout, _, err := run(t, "dir_size", filepath.Join(root, "missing"))
		require.ErrorIs(t, err, smtools.ErrNotADirectory)
		assert.Empty(t, stdout)
	})

	t.Run("too many arguments", func(t *testing.T) {
		_, _, err := run(t, "dir_size", root, root)
		require.Error(t, err)
	})
}

func TestFind(t *testing.T) {
	root := tree(t)

	t.Run("recursive", func(t *testing.T) {
		stdout, _, err := run(t, "find", "--name", "notes.txt", "--dir", root, "-r")
		require.NoError(t, err)
		assert.Equal(t,
			[]string{filepath.Join(root, "notes.txt"), filepath.Join(root, "sub", "notes.txt")},
			strings.Fields(stdout))
	})

	t.Run("non-recursive resolves against cwd", func(t *testing.T) {
		chdir(t, root)
		stdout, _, err := run(t, "find", "--name", "notes.txt")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "notes.txt")+"\n", stdout)
	})

	t.Run("no matches prints nothing", func(t *testing.T) {
		stdout, _, err := run(t, "find", "--name", "absent", "--dir", root, "-r")
		require.NoError(t, err)
		assert.Empty(t, stdout)
	})

	t.Run("name is required", func(t *testing.T) {
		_, _, err := run(t, "find", "--dir", root)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("missing dir", func(t *testing.T) {
		stdout, _, err := run(t, "find", "--name", "x", "--dir", filepath.Join(root, "nope"), "-r")
		require.Error(t, err)
		assert.Empty(t, stdout)
	})
}

func TestDind(t *testing.T) {
	root := tree(t)

	for _, name := range []string{"dind", "dd"} {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := run(t, name, "--name", "build", "--dir", root, "--recursive")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(root, "sub", "build")+"\n", stdout)
		})
	}
}

func TestContains(t *testing.T) {
	root := tree(t)
	sub := filepath.Join(root, "sub")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "direct file", args: []string{"--file", filepath.Join(root, "other.txt"), "--dir", root}, want: "true\n"},
		{name: "nested file direct", args: []string{"--file", filepath.Join(sub, "target.txt"), "--dir", root}, want: "false\n"},
		{name: "nested file recursive", args: []string{"--file", filepath.Join(sub, "target.txt"), "--dir", root, "-r"}, want: "true\n"},
		{name: "subdir", args: []string{"--subdir", sub, "--dir", root}, want: "true\n"},
		{name: "self", args: []string{"--subdir", root, "--dir", root, "-r"}, want: "false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, append([]string{"contains"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, stdout)
		})
	}

	t.Run("file and subdir are exclusive", func(t *testing.T) {
		_, _, err := run(t, "contains", "--file", "a", "--subdir", "b")
		require.Error(t, err)
	})

	t.Run("one target is required", func(t *testing.T) {
		_, _, err := run(t, "contains", "--dir", root)
		require.Error(t, err)
	})

	t.Run("file must be a file", func(t *testing.T) {
		_, _, err := run(t, "contains", "--file", sub, "--dir", root)
		require.ErrorIs(t, err, smtools.ErrInvalidArgument)
	})
}

func TestVerbose(t *testing.T) {
	root := tree(t)

	stdout, stderr, err := run(t, "-v", "dir_size", root)
	require.NoError(t, err)
	assert.Equal(t, "15.00000000 bytes\n", stdout)
	assert.Contains(t, stderr, "\toperation started\toperation=DirSize")
	assert.Contains(t, stderr, "status=success")
}

func TestConfig(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, "conf", "smtools.toml")
	t.Setenv("SMTOOLS_CONFIG_PATH", path)
	t.Setenv("SMTOOLS_HOME", home)

	t.Run("list without a file shows defaults", func(t *testing.T) {
		stdout, _, err := run(t, "config", "list")
		require.NoError(t, err)
		assert.Contains(t, stdout, "# Configuration from "+path)
		assert.Contains(t, stdout, `format = "binary"`)
	})

	t.Run("init writes the file", func(t *testing.T) {
		stdout, _, err := run(t, "config", "init")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Configuration initialized at "+path)
		assert.FileExists(t, path)
	})

	t.Run("list reads the file", func(t *testing.T) {
		stdout, _, err := run(t, "config", "list")
		require.NoError(t, err)
		assert.Contains(t, stdout, filepath.Join(home, "log"))
	})

	t.Run("init refuses to overwrite", func(t *testing.T) {
		_, _, err := run(t, "config", "init")
		require.Error(t, err)
	})

	t.Run("configured format is used", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("[size]\nformat = \"si\"\n"), 0644))
		root := tree(t)

		stdout, _, err := run(t, "dir_size", root)
		require.NoError(t, err)
		assert.Equal(t, "15B\n", stdout)
	})
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(prev)) })
}

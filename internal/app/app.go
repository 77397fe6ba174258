package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"smtools/internal/config"
	"smtools/internal/fs"
	"smtools/internal/smtools"
)

// Options adjusts how an App is wired. The zero value uses the real
// filesystem, the process working directory and the wall clock.
type Options struct {
	// Verbose mirrors log records to Stderr.
	Verbose bool
	Stderr  io.Writer

	// Cwd overrides the working directory relative paths resolve against.
	Cwd        string
	Filesystem smtools.Filesystem
	Clock      Clock
	IDs        IDGenerator
}

// App is the application layer between the CLI and the Toolkit.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and records the operation in the log.
type App struct {
	cfg     *config.Config
	toolkit *smtools.Toolkit
	logger  *slog.Logger
	clock   Clock
	op      *Operation
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "DirSize", "Find").
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation string, opts Options) (*App, error) {
	fsys := opts.Filesystem
	if fsys == nil {
		fsys = fs.NewOSFilesystem()
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	ids := opts.IDs
	if ids == nil {
		ids = UUIDGenerator{}
	}

	cwd := opts.Cwd
	if cwd == "" {
		var err error
		if cwd, err = os.Getwd(); err != nil {
			return nil, fmt.Errorf("determining working directory: %w", err)
		}
	}

	var tkOpts []smtools.Option
	ignore, err := ignoreMatcher(cfg.Walk)
	if err != nil {
		return nil, err
	}
	if ignore.Len() > 0 {
		tkOpts = append(tkOpts, smtools.WithIgnorer(ignore))
	}

	var stderr io.Writer
	if opts.Verbose {
		stderr = opts.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
	}

	op := NewOperation(ids.New(), operation, clock.Now())
	logger, logFile, err := newLogger(cfg.LogDir, op.ID, parseLevel(cfg.LogLevel), stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger.Info("operation started", "operation", op.Name, "cwd", cwd)

	return &App{
		cfg:     cfg,
		toolkit: smtools.NewToolkit(fsys, cwd, tkOpts...),
		logger:  logger,
		clock:   clock,
		op:      op,
		logFile: logFile,
	}, nil
}

// ignoreMatcher merges inline patterns with those read from the ignore file.
func ignoreMatcher(wc config.WalkConfig) (*fs.IgnoreMatcher, error) {
	patterns := append([]string{}, wc.Ignore...)
	if wc.IgnoreFile != "" {
		extra, err := fs.ParseIgnoreFile(wc.IgnoreFile)
		if err != nil {
			return nil, fmt.Errorf("loading ignore file %s: %w", wc.IgnoreFile, err)
		}
		patterns = append(patterns, extra...)
	}
	m, err := fs.NewIgnoreMatcher(patterns)
	if err != nil {
		return nil, fmt.Errorf("walk.ignore: %w", err)
	}
	return m, nil
}

// fail records err against the operation and returns it unchanged.
func (a *App) fail(err error) error {
	a.op.Fail(err)
	a.logger.Error("operation failed", "error", err)
	return err
}

// DirSize returns the formatted total size of the regular files under
// rawPath. An empty rawPath means the working directory. An empty format
// uses the configured default.
func (a *App) DirSize(rawPath, format string) (string, error) {
	if format == "" {
		format = a.cfg.Size.Format
	}
	f, err := smtools.ParseSizeFormat(format)
	if err != nil {
		return "", a.fail(err)
	}

	size, err := a.toolkit.DirSize(rawPath)
	if err != nil {
		return "", a.fail(err)
	}
	a.logger.Info("dir size", "path", a.toolkit.Normalize(rawPath), "bytes", size)
	return smtools.FormatSizeAs(size, f), nil
}

// ForEachFileWithName calls fn for every file named name under dir, in walk
// order. It returns the number of paths passed to fn.
func (a *App) ForEachFileWithName(name, dir string, recursive bool, fn func(string) error) (int, error) {
	m, err := a.toolkit.FilesWithName(name, dir, recursive)
	if err != nil {
		return 0, a.fail(err)
	}
	return a.drain(m, fn)
}

// ForEachDirWithName is ForEachFileWithName for directories.
func (a *App) ForEachDirWithName(name, dir string, recursive bool, fn func(string) error) (int, error) {
	m, err := a.toolkit.DirsWithName(name, dir, recursive)
	if err != nil {
		return 0, a.fail(err)
	}
	return a.drain(m, fn)
}

func (a *App) drain(m *smtools.Matches, fn func(string) error) (int, error) {
	n := 0
	for m.Next() {
		if err := fn(m.Path()); err != nil {
			return n, a.fail(err)
		}
		n++
	}
	if err := m.Err(); err != nil {
		return n, a.fail(err)
	}
	a.logger.Info("name search finished", "matches", n)
	return n, nil
}

// ContainsFile reports whether file lies in dir.
func (a *App) ContainsFile(file, dir string, recursive bool) (bool, error) {
	ok, err := a.toolkit.ContainsFile(file, dir, recursive)
	if err != nil {
		return false, a.fail(err)
	}
	a.logger.Info("contains file", "file", file, "dir", dir, "recursive", recursive, "result", ok)
	return ok, nil
}

// ContainsDir reports whether subdir lies in dir.
func (a *App) ContainsDir(subdir, dir string, recursive bool) (bool, error) {
	ok, err := a.toolkit.ContainsDir(subdir, dir, recursive)
	if err != nil {
		return false, a.fail(err)
	}
	a.logger.Info("contains dir", "subdir", subdir, "dir", dir, "recursive", recursive, "result", ok)
	return ok, nil
}

// Close logs the operation outcome and releases the log file.
func (a *App) Close() error {
	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"elapsed", a.op.Elapsed(a.clock.Now()),
	)
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			return fmt.Errorf("closing log file: %w", err)
		}
	}
	return nil
}

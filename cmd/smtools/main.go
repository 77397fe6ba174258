package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smtools/internal/app"
	"smtools/internal/config"
	"smtools/internal/output"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		output.Error(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// cli carries state shared by every subcommand.
type cli struct {
	verbose bool
}

// newApp loads the config and creates an App. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "DirSize", "Find").
func (c *cli) newApp(cmd *cobra.Command, operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.Load(defaults.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation, app.Options{
		Verbose: c.verbose,
		Stderr:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "smtools",
		Short: "Provides simple file utility functionalities",
		// Anything that is not a known subcommand falls through to help.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Mirror log records to stderr")

	root.AddCommand(
		c.newDirSizeCmd(),
		c.newFindCmd(),
		c.newDindCmd(),
		c.newContainsCmd(),
		newConfigCmd(),
	)
	return root
}

// dir_size command
func (c *cli) newDirSizeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "dir_size [dir_path]",
		Aliases: []string{"ds"},
		Short:   "Print the size of a directory in a human readable format",
		Long: "Computes the total size of every regular file below a directory, at any depth.\n" +
			"dir_path defaults to the current working directory.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, "DirSize")
			if err != nil {
				return err
			}
			defer a.Close()

			target := ""
			if len(args) > 0 {
				target = args[0]
			}

			size, err := a.DirSize(target, format)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), size)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Size format: binary, iec or si (default from config)")
	return cmd
}

// searchFlags are shared by find and dind.
type searchFlags struct {
	name      string
	dir       string
	recursive bool
}

func (f *searchFlags) register(cmd *cobra.Command, what string) {
	cmd.Flags().StringVar(&f.name, "name", "", "Name of a "+what)
	cmd.Flags().StringVar(&f.dir, "dir", "", "Path to directory (default: current working directory)")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "Search through subdirectories")
	_ = cmd.MarkFlagRequired("name")
}

// printMatches buffers matches so a failed search prints nothing on stdout.
func printMatches(cmd *cobra.Command, search func(fn func(string) error) (int, error)) error {
	var matches []string
	if _, err := search(func(p string) error {
		matches = append(matches, p)
		return nil
	}); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, m := range matches {
		fmt.Fprintln(out, m)
	}
	return nil
}

// find command
func (c *cli) newFindCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:   "find",
		Short: "List files with a given name inside a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, "Find")
			if err != nil {
				return err
			}
			defer a.Close()

			return printMatches(cmd, func(fn func(string) error) (int, error) {
				return a.ForEachFileWithName(f.name, f.dir, f.recursive, fn)
			})
		},
	}
	f.register(cmd, "file")
	return cmd
}

// dind command
func (c *cli) newDindCmd() *cobra.Command {
	var f searchFlags

	cmd := &cobra.Command{
		Use:     "dind",
		Aliases: []string{"dd"},
		Short:   "List directories with a given name inside a directory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, "Dind")
			if err != nil {
				return err
			}
			defer a.Close()

			return printMatches(cmd, func(fn func(string) error) (int, error) {
				return a.ForEachDirWithName(f.name, f.dir, f.recursive, fn)
			})
		},
	}
	f.register(cmd, "directory")
	return cmd
}

// contains command
func (c *cli) newContainsCmd() *cobra.Command {
	var (
		file      string
		subdir    string
		dir       string
		recursive bool
	)

	cmd := &cobra.Command{
		Use:   "contains",
		Short: "Report whether a file or subdirectory lies inside a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd, "Contains")
			if err != nil {
				return err
			}
			defer a.Close()

			var ok bool
			if file != "" {
				ok, err = a.ContainsFile(file, dir, recursive)
			} else {
				ok, err = a.ContainsDir(subdir, dir, recursive)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to a file")
	cmd.Flags().StringVar(&subdir, "subdir", "", "Path to a directory")
	cmd.Flags().StringVar(&dir, "dir", "", "Path to the containing directory (default: current working directory)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Accept matches at any depth")
	cmd.MarkFlagsMutuallyExclusive("file", "subdir")
	cmd.MarkFlagsOneRequired("file", "subdir")
	return cmd
}

// config command
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := app.GetDefaults()
			if err != nil {
				return fmt.Errorf("failed to get defaults: %w", err)
			}

			cfg := config.NewConfig(defaults.BaseDir)
			if err := config.Init(defaults.ConfigPath, cfg); err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			output.Info(cmd.OutOrStdout(), "Configuration initialized at "+defaults.ConfigPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Log Dir: %s\n", cfg.LogDir)
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "View the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := app.GetDefaults()
			if err != nil {
				return fmt.Errorf("failed to get defaults: %w", err)
			}

			cfg, err := config.Load(defaults.ConfigPath)
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "# Configuration from %s\n\n", defaults.ConfigPath)
			m := &config.Manager{}
			return m.Write(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.AddCommand(initCmd, listCmd)
	return cmd
}

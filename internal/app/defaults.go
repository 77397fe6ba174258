package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Defaults holds the locations smtools uses when nothing else is configured.
type Defaults struct {
	ConfigPath string
	BaseDir    string
	LogDir     string
}

// GetDefaults resolves default paths. Lookup order, first non-empty wins:
//
//	config file: $SMTOOLS_CONFIG_PATH, $XDG_CONFIG_HOME/smtools.toml, ~/.config/smtools.toml
//	base dir:    $SMTOOLS_HOME, $XDG_DATA_HOME/smtools, ~/.local/share/smtools
func GetDefaults() (Defaults, error) {
	configPath, err := lookupPath("SMTOOLS_CONFIG_PATH", "XDG_CONFIG_HOME", "smtools.toml", ".config")
	if err != nil {
		return Defaults{}, err
	}
	baseDir, err := lookupPath("SMTOOLS_HOME", "XDG_DATA_HOME", "smtools", ".local", "share")
	if err != nil {
		return Defaults{}, err
	}

	return Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		LogDir:     filepath.Join(baseDir, "log"),
	}, nil
}

// lookupPath returns $override, else $xdgVar/name, else ~/homeRel.../name.
func lookupPath(override, xdgVar, name string, homeRel ...string) (string, error) {
	if p := os.Getenv(override); p != "" {
		return p, nil
	}
	if dir := os.Getenv(xdgVar); dir != "" {
		return filepath.Join(dir, name), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	elems := append(append([]string{homeDir}, homeRel...), name)
	return filepath.Join(elems...), nil
}

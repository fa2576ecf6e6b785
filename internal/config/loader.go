package config

import (
	"os"
	"path/filepath"
)

// Config file names, in lookup order.
const (
	ConfigFileName    = "pgddui.yaml"
	ConfigFileNameAlt = "pgddui.yml"
)

// maxUpwardSearchLevels bounds FindProjectRoot.
const maxUpwardSearchLevels = 10

// FindConfigFile returns the config file in dir, or "".
func FindConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from startDir to the first directory holding a
// config file. It returns "" when none is found.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		if FindConfigFile(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
	return ""
}

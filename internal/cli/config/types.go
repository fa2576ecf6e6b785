// Package config loads the CLI configuration.
//
// Values are layered, lowest first: defaults (including the legacy DB_* and
// APP_* environment names), the yaml config file, PGDDUI_* environment
// variables, then command-line flags.
package config

import (
	"github.com/pgddui/pgddui/pkg/core"
)

// TargetConfig is an alias for the shared target configuration.
type TargetConfig = core.TargetConfig

// Config holds all CLI configuration options.
type Config struct {
	Target        *TargetConfig `koanf:"target"`
	CatalogSchema string        `koanf:"catalog_schema"`
	CheckVersion  bool          `koanf:"check_version"`
	BuildPath     string        `koanf:"build_path"`
	OutputFormat  string        `koanf:"output"`
	Verbose       bool          `koanf:"verbose"`
	Debug         bool          `koanf:"debug"`
	Log           LogConfig     `koanf:"log"`
	UI            UIConfig      `koanf:"ui"`
	Docs          DocsConfig    `koanf:"docs"`

	// ProjectRoot is the directory relative paths are resolved against.
	ProjectRoot string `koanf:"-"`
	// ConfigFile is the config file that was read, if any.
	ConfigFile string `koanf:"-"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Path   string `koanf:"path"`
}

// UIConfig holds configuration for the web viewer.
type UIConfig struct {
	Port          int    `koanf:"port"`
	SessionSecret string `koanf:"session_secret"`
	AutoOpen      bool   `koanf:"auto_open"`
	TemplatesDir  string `koanf:"templates_dir"`
	SecureCookies bool   `koanf:"secure_cookies"`
}

// DocsConfig holds configuration for the static site.
type DocsConfig struct {
	Port     int  `koanf:"port"`
	Minify   bool `koanf:"minify"`
	Markdown bool `koanf:"markdown"`
	SQLite   bool `koanf:"sqlite"`
}

// Output format values.
const (
	DefaultOutput = "auto"
)

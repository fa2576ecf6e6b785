package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	intconfig "github.com/pgddui/pgddui/internal/config"
	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment overrides. A double underscore nests:
// PGDDUI_TARGET__HOST sets target.host.
const EnvPrefix = "PGDDUI_"

// DotEnvFile is loaded from the project root when present.
const DotEnvFile = ".env"

// legacyEnv maps the DB_* and APP_* environment names of older deployments to
// config keys. They only provide defaults.
var legacyEnv = map[string]string{
	"DB_HOST":         "target.host",
	"DB_PORT":         "target.port",
	"DB_NAME":         "target.database",
	"DB_USER":         "target.user",
	"DB_PW":           "target.password",
	"APP_SECRET_KEY":  "ui.session_secret",
	"PGDD_BUILD_PATH": "build_path",
	"LOG_PATH":        "log.path",
	"APP_DEBUG":       "debug",
}

// flagKeys maps command-line flags to config keys. Flags not listed map
// kebab-case to snake_case.
var flagKeys = map[string]string{
	"host":     "target.host",
	"db-port":  "target.port",
	"database": "target.database",
	"user":     "target.user",
}

// Options selects where configuration comes from.
type Options struct {
	// ConfigFile is an explicit config path. Empty searches upward from
	// the working directory.
	ConfigFile string
	// EnvFile is an explicit dotenv path. Empty loads .env from the
	// project root when it exists.
	EnvFile string
	// Flags are applied last; only flags that were set count.
	Flags *pflag.FlagSet
}

// Load builds the configuration and validates it.
func Load(opts Options) (*Config, error) {
	cfg, err := load(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadUnvalidated builds the configuration without validating it, for
// commands that must run against an incomplete setup (doctor, init).
func LoadUnvalidated(opts Options) (*Config, error) {
	return load(opts)
}

func load(opts Options) (*Config, error) {
	k := koanf.New(".")

	projectRoot := inferProjectRoot(opts.ConfigFile)

	// 1. .env into the process environment, never overriding it.
	if err := loadDotEnv(opts.EnvFile, projectRoot); err != nil {
		return nil, err
	}

	// 2. Defaults, with legacy environment names on top.
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(confmap.Provider(legacyValues(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load legacy environment: %w", err)
	}

	// 3. Config file.
	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = intconfig.FindConfigFile(projectRoot)
	}
	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	}

	// 4. PGDDUI_* environment variables.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 5. Flags that were explicitly set.
	if opts.Flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(opts.Flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return flagKey(f.Name), posflag.FlagVal(opts.Flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.ConfigFile = configFile
	if cfg.Target == nil {
		cfg.Target = &TargetConfig{}
	}
	intconfig.ApplyTargetDefaults(cfg.Target)
	expandTargetEnvVars(cfg.Target)
	cfg.UI.SessionSecret = expandEnvVars(cfg.UI.SessionSecret)
	cfg.BuildPath = resolvePathRelativeTo(cfg.BuildPath, projectRoot)
	cfg.UI.TemplatesDir = resolvePathRelativeTo(cfg.UI.TemplatesDir, projectRoot)
	cfg.Log.Path = resolvePathRelativeTo(cfg.Log.Path, projectRoot)

	return &cfg, nil
}

// Defaults returns the built-in value of every defaulted key.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"target.type":       intconfig.DefaultTargetType,
		"target.port":       intconfig.DefaultPostgresPort,
		"catalog_schema":    intconfig.DefaultCatalogSchema,
		"check_version":     true,
		"build_path":        intconfig.DefaultBuildPath,
		"output":            DefaultOutput,
		"verbose":           false,
		"debug":             false,
		"log.level":         "info",
		"log.format":        "text",
		"ui.port":           intconfig.DefaultUIPort,
		"ui.auto_open":      false,
		"ui.secure_cookies": false,
		"docs.port":         intconfig.DefaultDocsPort,
	}
}

func legacyValues() map[string]interface{} {
	values := make(map[string]interface{})
	for name, key := range legacyEnv {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			values[key] = v
		}
	}
	return values
}

// LegacyEnv returns the legacy environment names and the keys they set.
func LegacyEnv() map[string]string {
	out := make(map[string]string, len(legacyEnv))
	for name, key := range legacyEnv {
		out[name] = key
	}
	return out
}

// envKey turns PGDDUI_TARGET__HOST into target.host.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func flagKey(name string) string {
	if key, ok := flagKeys[name]; ok {
		return key
	}
	return strings.ReplaceAll(name, "-", "_")
}

func loadDotEnv(explicit, projectRoot string) error {
	if explicit != "" {
		if err := godotenv.Load(explicit); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", explicit, err)
		}
		return nil
	}

	path := filepath.Join(projectRoot, DotEnvFile)
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// inferProjectRoot is the directory of an explicit config file, else the
// nearest directory above the working directory holding a config file,
// else the working directory.
func inferProjectRoot(configFile string) string {
	if configFile != "" {
		if abs, err := filepath.Abs(configFile); err == nil {
			return filepath.Dir(abs)
		}
	}

	cwd, err := os.Getwd()
	if err != nil || cwd == "" {
		return "."
	}
	if root := intconfig.FindProjectRoot(cwd); root != "" {
		return root
	}
	return cwd
}

func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR} with the variable's value. Unset variables
// are left as written.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if val := os.Getenv(match[2 : len(match)-1]); val != "" {
			return val
		}
		return match
	})
}

func expandTargetEnvVars(t *TargetConfig) {
	t.Host = expandEnvVars(t.Host)
	t.Database = expandEnvVars(t.Database)
	t.User = expandEnvVars(t.User)
	t.Password = expandEnvVars(t.Password)
}

type contextKey int

const configKey contextKey = iota

// WithConfig stores cfg in ctx.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext returns the config stored by WithConfig, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(configKey).(*Config)
	return cfg
}

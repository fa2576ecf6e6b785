package config

import "github.com/pgddui/pgddui/pkg/core"

// Default configuration values.
const (
	DefaultTargetType      = "postgres"
	DefaultPostgresPort    = 5432
	DefaultApplicationName = "pgdd-ui"
	DefaultCatalogSchema   = "dd_ui"
	DefaultBuildPath       = "./_build"
	DefaultUIPort          = 5000
	DefaultDocsPort        = 8080

	// DefaultSessionSecret signs viewer cookies when no secret is configured.
	// It is public, so sessions signed with it are forgeable.
	DefaultSessionSecret = "pgddui-dev-secret-change-me" //nolint:gosec
)

// ApplyTargetDefaults fills unset target fields.
func ApplyTargetDefaults(t *core.TargetConfig) {
	if t == nil {
		return
	}
	if t.Type == "" {
		t.Type = DefaultTargetType
	}
	if t.Type == "postgres" {
		if t.Port == 0 {
			t.Port = DefaultPostgresPort
		}
		if t.Host == "" {
			t.Host = "localhost"
		}
	}
	if t.Options == nil {
		t.Options = make(map[string]string)
	}
	if _, ok := t.Options["application_name"]; !ok {
		t.Options["application_name"] = DefaultApplicationName
	}
}

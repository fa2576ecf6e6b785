package config

import (
	"os"
	"path/filepath"
	"testing"

	_ "github.com/pgddui/pgddui/pkg/adapters/postgres" // registers "postgres"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTargetDefaults(t *testing.T) {
	target := &core.TargetConfig{Database: "app"}
	ApplyTargetDefaults(target)

	assert.Equal(t, "postgres", target.Type)
	assert.Equal(t, 5432, target.Port)
	assert.Equal(t, "localhost", target.Host)
	assert.Equal(t, "pgdd-ui", target.Options["application_name"])

	custom := &core.TargetConfig{Type: "postgres", Port: 6543, Options: map[string]string{"application_name": "mine"}}
	ApplyTargetDefaults(custom)
	assert.Equal(t, 6543, custom.Port)
	assert.Equal(t, "mine", custom.Options["application_name"])

	ApplyTargetDefaults(nil)
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name      string
		target    *core.TargetConfig
		errSubstr string
	}{
		{name: "valid", target: &core.TargetConfig{Type: "postgres", Database: "app", Port: 5432}},
		{name: "type is case insensitive", target: &core.TargetConfig{Type: "Postgres", Database: "app", Port: 5432}},
		{name: "nil", target: nil, errSubstr: "target is required"},
		{name: "empty type", target: &core.TargetConfig{Database: "app", Port: 5432}, errSubstr: "target type is required"},
		{name: "unknown type", target: &core.TargetConfig{Type: "oracle", Database: "app", Port: 5432}, errSubstr: "unknown adapter type"},
		{name: "no database", target: &core.TargetConfig{Type: "postgres", Port: 5432}, errSubstr: "target database is required"},
		{name: "port zero", target: &core.TargetConfig{Type: "postgres", Database: "app"}, errSubstr: "out of range"},
		{name: "port too high", target: &core.TargetConfig{Type: "postgres", Database: "app", Port: 70000}, errSubstr: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.target)
			if tt.errSubstr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o750))

	assert.Empty(t, FindProjectRoot(nested))

	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte("{}"), 0o600))
	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))

	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("{}"), 0o600))
	assert.Equal(t, filepath.Join(root, ConfigFileName), FindConfigFile(root), "yaml wins over yml")
}

package config

import (
	"fmt"
	"strings"

	"github.com/pgddui/pgddui/internal/cli/output"
	intconfig "github.com/pgddui/pgddui/internal/config"
)

// Validate checks the target and the listen ports.
func (c *Config) Validate() error {
	if err := intconfig.ValidateTarget(c.Target); err != nil {
		return fmt.Errorf("invalid target configuration: %w", err)
	}
	if err := intconfig.ValidatePort("ui port", c.UI.Port); err != nil {
		return err
	}
	if err := intconfig.ValidatePort("docs port", c.Docs.Port); err != nil {
		return err
	}
	if strings.TrimSpace(c.CatalogSchema) == "" {
		return fmt.Errorf("catalog_schema must not be empty")
	}
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		return err
	}
	return nil
}

// SessionSecret returns the configured secret, or the public default and
// false when none is set. A ${VAR} reference to an unset variable counts as
// not set.
func (c *Config) SessionSecret() (string, bool) {
	if c.UI.SessionSecret != "" && !envVarPattern.MatchString(c.UI.SessionSecret) {
		return c.UI.SessionSecret, true
	}
	return intconfig.DefaultSessionSecret, false
}

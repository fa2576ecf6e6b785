// Package config holds configuration defaults and validation shared by the
// CLI and the servers it starts.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pgddui/pgddui/pkg/adapter"
	"github.com/pgddui/pgddui/pkg/core"
)

// ValidateTarget checks that the target names a registered adapter, a
// database and a usable port.
func ValidateTarget(t *core.TargetConfig) error {
	if t == nil {
		return errors.New("target is required")
	}
	if t.Type == "" {
		return errors.New("target type is required")
	}

	t.Type = strings.ToLower(t.Type)
	if !adapter.IsRegistered(t.Type) {
		return &adapter.UnknownAdapterError{Type: t.Type, Available: adapter.ListAdapters()}
	}
	if strings.TrimSpace(t.Database) == "" {
		return errors.New("target database is required\nHint: set target.database in pgddui.yaml, PGDDUI_TARGET__DATABASE or DB_NAME")
	}
	if err := ValidatePort("target port", t.Port); err != nil {
		return err
	}
	return nil
}

// ValidatePort checks that port is a TCP port number.
func ValidatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s %d is out of range (1-65535)", name, port)
	}
	return nil
}

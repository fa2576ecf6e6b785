package core

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type     string `koanf:"type"` // postgres
	Database string `koanf:"database"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Additional driver-specific options (sslmode, application_name, connect_timeout)
	Options map[string]string `koanf:"options"`
}

// AdapterConfig converts the target into the adapter connection settings.
func (t *TargetConfig) AdapterConfig() AdapterConfig {
	if t == nil {
		return AdapterConfig{}
	}
	return AdapterConfig{
		Type:     t.Type,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
	}
}

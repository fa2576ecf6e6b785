package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	intconfig "github.com/pgddui/pgddui/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const sampleConfigHeader = `# pgddui configuration.
#
# Every key can be overridden with a PGDDUI_ environment variable, using a
# double underscore for nesting (PGDDUI_TARGET__PASSWORD), or with the
# legacy DB_HOST, DB_PORT, DB_NAME, DB_USER and DB_PW variables.
`

// sampleTarget mirrors the target section of the config file.
type sampleTarget struct {
	Type     string            `yaml:"type"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	Database string            `yaml:"database"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Options  map[string]string `yaml:"options"`
}

type sampleUI struct {
	Port          int    `yaml:"port"`
	SessionSecret string `yaml:"session_secret"`
	AutoOpen      bool   `yaml:"auto_open"`
}

type sampleDocs struct {
	Port     int  `yaml:"port"`
	Minify   bool `yaml:"minify"`
	Markdown bool `yaml:"markdown"`
	SQLite   bool `yaml:"sqlite"`
}

type sampleConfig struct {
	Target        sampleTarget `yaml:"target"`
	CatalogSchema string       `yaml:"catalog_schema"`
	CheckVersion  bool         `yaml:"check_version"`
	BuildPath     string       `yaml:"build_path"`
	UI            sampleUI     `yaml:"ui"`
	Docs          sampleDocs   `yaml:"docs"`
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a sample pgddui.yaml",
		Long: `Write a pgddui.yaml with every setting at its default value.

Target flags (--host, --db-port, --database, --user) and environment
variables already set are written into the file. The password is written
as a ${PGDDUI_DB_PASSWORD} reference rather than in clear text.`,
		Example: `  # Initialize in the current directory
  pgddui init --database warehouse

  # Initialize in a new directory, replacing an existing file
  pgddui init deploy/ --force`,
		Args: cobra.MaximumNArgs(1),
		Annotations: map[string]string{
			AnnotationLenientConfig: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cmdCtx := NewCommandContextWithoutDB(cmd)
	r := cmdCtx.Renderer

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	content, err := renderSampleConfig(sampleFromConfig(cmdCtx))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	r.StatusLine(path, "success", "")
	r.Println()
	r.Success("pgddui configured!")
	r.Println()
	r.Println("Next steps:")
	r.Println("  1. Export PGDDUI_DB_PASSWORD or edit target.password")
	r.Println("  2. Run 'pgddui doctor' to check the connection and extension")
	r.Println("  3. Run 'pgddui ui' to browse the dictionary")
	return nil
}

func sampleFromConfig(cmdCtx *CommandContext) sampleConfig {
	cfg := cmdCtx.Cfg
	t := cfg.Target

	sample := sampleConfig{
		Target: sampleTarget{
			Type:     intconfig.DefaultTargetType,
			Host:     "localhost",
			Port:     intconfig.DefaultPostgresPort,
			Database: "postgres",
			User:     "postgres",
			Password: "${PGDDUI_DB_PASSWORD}",
			Options:  map[string]string{"sslmode": "prefer", "application_name": intconfig.DefaultApplicationName},
		},
		CatalogSchema: intconfig.DefaultCatalogSchema,
		CheckVersion:  true,
		BuildPath:     intconfig.DefaultBuildPath,
		UI:            sampleUI{Port: intconfig.DefaultUIPort, SessionSecret: "${PGDDUI_SESSION_SECRET}"},
		Docs:          sampleDocs{Port: intconfig.DefaultDocsPort},
	}

	if t != nil {
		if t.Host != "" {
			sample.Target.Host = t.Host
		}
		if t.Port != 0 {
			sample.Target.Port = t.Port
		}
		if t.Database != "" {
			sample.Target.Database = t.Database
		}
		if t.User != "" {
			sample.Target.User = t.User
		}
	}
	if cfg.CatalogSchema != "" {
		sample.CatalogSchema = cfg.CatalogSchema
	}
	return sample
}

func renderSampleConfig(sample sampleConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(sampleConfigHeader)
	buf.WriteString("\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(sample); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}

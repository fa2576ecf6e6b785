package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/pgddui/pgddui/internal/cli/config"
)

// configKey is one leaf of the configuration tree.
type configKey struct {
	Key     string
	Type    string
	Default string
	EnvVar  string
}

// configKeys walks the koanf tags of t and returns its leaves in
// declaration order.
func configKeys(t reflect.Type, prefix string) []configKey {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	defaults := config.Defaults()

	var keys []configKey
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			keys = append(keys, configKeys(ft, key)...)
			continue
		}

		def := ""
		if v, ok := defaults[key]; ok {
			def = fmt.Sprint(v)
		}
		keys = append(keys, configKey{
			Key:     key,
			Type:    ft.Kind().String(),
			Default: def,
			EnvVar:  config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__")),
		})
	}
	return keys
}

// generateConfigDocs writes the pgddui.yaml reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "pgddui configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("pgddui reads `pgddui.yaml` from the working directory or the nearest parent that has one. `pgddui init` writes a starter file.")

	w.Header(2, "Keys")
	var rows [][]string
	for _, k := range configKeys(reflect.TypeOf(config.Config{}), "") {
		def := "-"
		if k.Default != "" {
			def = InlineCode(k.Default)
		}
		rows = append(rows, []string{InlineCode(k.Key), k.Type, def, InlineCode(k.EnvVar)})
	}
	w.Table([]string{"Key", "Type", "Default", "Environment"}, rows)

	w.Header(2, "Legacy Environment Names")
	w.Paragraph("These names are honoured as defaults. The config file and `PGDDUI_*` variables override them.")
	legacy := config.LegacyEnv()
	names := make([]string, 0, len(legacy))
	for name := range legacy {
		names = append(names, name)
	}
	sort.Strings(names)
	rows = rows[:0]
	for _, name := range names {
		rows = append(rows, []string{InlineCode(name), InlineCode(legacy[name])})
	}
	w.Table([]string{"Variable", "Key"}, rows)

	w.Header(2, "Environment References")
	w.Paragraph("Target fields and `ui.session_secret` expand `${VAR}` references after loading:")
	w.CodeBlock("yaml", `target:
  host: db.internal
  database: analytics
  password: ${PGDDUI_DB_PASSWORD}
ui:
  session_secret: ${PGDDUI_SESSION_SECRET}`)

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}

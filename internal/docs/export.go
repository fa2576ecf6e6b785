package docs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// Mode selects the artifact encoding.
type Mode int

const (
	// ModeJSON writes <dir>/<name>.json.
	ModeJSON Mode = iota
	// ModeScript writes <dir>/<name>.js assigning the parsed data to a global
	// variable, so pages opened from disk can load it with a <script> tag.
	ModeScript
)

func (m Mode) ext() string {
	if m == ModeScript {
		return ".js"
	}
	return ".json"
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Exporter writes named artifacts into a directory.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter rooted at dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir}
}

// Export serializes data under name, replacing any previous artifact.
// The directory is created when missing. It returns the written path.
func (e *Exporter) Export(name string, data any, mode Mode) (string, error) {
	if !identifier.MatchString(name) {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	if mode == ModeScript {
		payload, err = scriptWrap(name, payload)
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(e.dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(e.dir, name+mode.ext())
	if err := os.WriteFile(path, payload, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// scriptWrap produces `var name = JSON.parse("<json>");`. The JSON text is
// itself JSON-encoded so it is a valid string literal whatever it contains.
func scriptWrap(name string, payload []byte) ([]byte, error) {
	literal, err := json.Marshal(string(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to quote %s: %w", name, err)
	}
	return fmt.Appendf(nil, "var %s = JSON.parse(%s);\n", name, literal), nil
}

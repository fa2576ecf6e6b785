package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pgddui/pgddui/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanExample(t *testing.T) {
	tests := []struct {
		name    string
		example string
		want    string
	}{
		{name: "common indent", example: "\n    pgddui list tables\n      --system\n", want: "pgddui list tables\n  --system"},
		{name: "blank lines ignored", example: "  a\n\n  b", want: "a\n\nb"},
		{name: "no indent", example: "pgddui doctor\n", want: "pgddui doctor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanExample(tt.example))
		})
	}
}

func TestGenerateCLIDocs(t *testing.T) {
	out := t.TempDir()
	require.NoError(t, generateCLIDocs(out))

	index, err := os.ReadFile(filepath.Join(out, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "# CLI Reference")
	assert.Contains(t, string(index), "pgddui --help")

	for _, cmd := range visibleCommands(cli.NewRootCmd()) {
		page, err := os.ReadFile(filepath.Join(out, cmd.Name()+".md"))
		require.NoError(t, err, cmd.Name())
		assert.Contains(t, string(page), "## Usage", cmd.Name())
		assert.Contains(t, string(page), "DO NOT EDIT", cmd.Name())
	}
	assert.NoFileExists(t, filepath.Join(out, "help.md"))
}

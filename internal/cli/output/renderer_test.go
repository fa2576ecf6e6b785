package output

import (
	"bytes"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "", want: ModeAuto},
		{in: "auto", want: ModeAuto},
		{in: "TEXT", want: ModeText},
		{in: "md", want: ModeMarkdown},
		{in: "markdown", want: ModeMarkdown},
		{in: " json ", want: ModeJSON},
		{in: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		tty  bool
		want Mode
	}{
		{name: "auto on terminal", mode: ModeAuto, tty: true, want: ModeText},
		{name: "auto piped", mode: ModeAuto, tty: false, want: ModeMarkdown},
		{name: "empty is auto", mode: "", tty: false, want: ModeMarkdown},
		{name: "explicit json", mode: ModeJSON, tty: true, want: ModeJSON},
		{name: "explicit text piped", mode: ModeText, tty: false, want: ModeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.tty)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_Markdown(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeAuto, false)

	r.Header(1, "tables (2)")
	r.KeyValue("Database", "app")
	r.StatusLine("Connection", "success", "localhost:5432")
	r.StatusLine("Extension", "error", "not installed")
	r.Table([]string{"Schema", "Table"}, [][]string{{"app", "users"}, {"audit", "users"}})
	r.Warning("stats are cached")

	got := out.String()
	assert.Contains(t, got, "# Tables (2)")
	assert.Contains(t, got, "- **Database**: app")
	assert.Contains(t, got, "- [ok] Connection: localhost:5432")
	assert.Contains(t, got, "- [fail] Extension: not installed")
	assert.Regexp(t, `\|\s*app\s*\|\s*users\s*\|`, got)
	assert.Contains(t, errOut.String(), "**Warning** stats are cached")
	assert.False(t, ansiPattern.MatchString(got+errOut.String()), "markdown must not carry ANSI codes")
}

func TestRenderer_TextPiped(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)

	r.Header(1, "schemas")
	r.Table([]string{"Schema"}, [][]string{{"app"}})
	r.Success("done")

	got := out.String()
	assert.Contains(t, got, "Schemas")
	assert.Contains(t, got, "app")
	assert.Contains(t, got, "done")
	assert.False(t, ansiPattern.MatchString(got), "no colors without a terminal")
}

func TestRenderer_JSON(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, false)

	require.NoError(t, r.JSON(map[string]any{"pgdd_version": "0.5"}))
	assert.Equal(t, "{\n  \"pgdd_version\": \"0.5\"\n}\n", out.String())
}

func TestRenderer_JSONHighlightedOnTerminal(t *testing.T) {
	r, out, _ := newTestRenderer(ModeJSON, true)

	require.NoError(t, r.JSON(map[string]any{"pgdd_version": "0.5"}))
	plain := ansiPattern.ReplaceAllString(out.String(), "")
	assert.Contains(t, plain, `"pgdd_version"`)
	assert.Contains(t, plain, `"0.5"`)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Views", FormatHeader(2, "Views"))
	assert.Equal(t, "# Views", FormatHeader(0, "Views"))
	assert.Equal(t, "- **Host**: db", FormatKeyValue("Host", "db"))
	assert.Equal(t, "```json\n{}\n```", FormatCodeBlock("json", "{}\n"))
	assert.True(t, strings.HasPrefix(FormatCodeBlock("", "x"), "```\n"))
}

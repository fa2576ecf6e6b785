// Package testutil provides assertions for command output.
package testutil

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/pgddui/pgddui/internal/cli/output"
)

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that s contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("output contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown checks for balanced code fences and non-empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if n := strings.Count(md, "```"); n%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", n)
	}

	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}

// AssertOutputMode checks that out looks like what a renderer in mode
// writes when stdout is not a terminal.
func AssertOutputMode(t *testing.T, out string, mode output.Mode) {
	t.Helper()

	switch mode {
	case output.ModeMarkdown:
		AssertNoANSI(t, out)
		AssertValidMarkdown(t, out)
	case output.ModeJSON:
		AssertNoANSI(t, out)
		if !json.Valid([]byte(out)) {
			t.Errorf("output is not valid JSON: %q", out)
		}
	}
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// FormatHeader returns a markdown heading.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item "- **key**: value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s**: %s", key, value)
}

// FormatCodeBlock wraps code in a fenced block.
func FormatCodeBlock(lang, code string) string {
	return "```" + lang + "\n" + strings.TrimRight(code, "\n") + "\n```"
}

// HighlightJSON writes src with terminal colors. On failure src is written
// unchanged.
func HighlightJSON(w io.Writer, src string) error {
	if err := quick.Highlight(w, src, "json", "terminal256", "monokai"); err != nil {
		_, err = io.WriteString(w, src)
		return err
	}
	return nil
}

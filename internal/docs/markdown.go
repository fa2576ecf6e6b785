package docs

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

const (
	mainOpen  = `<main id="content">`
	mainClose = `</main>`
)

// newMarkdownConverter renders listings as pipe tables. Escaping is off:
// catalog identifiers such as touch_updated_at must stay greppable.
func newMarkdownConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(
				table.WithCellPaddingBehavior(table.CellPaddingBehaviorMinimal),
			),
		),
		converter.WithEscapeMode(converter.EscapeModeDisabled),
	)
}

// mainContent extracts the <main> element of a rendered page, so navigation
// and footer chrome stay out of the markdown.
func mainContent(page string) string {
	start := strings.Index(page, mainOpen)
	if start < 0 {
		return page
	}
	rest := page[start+len(mainOpen):]
	end := strings.Index(rest, mainClose)
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// PagesToMarkdown converts rendered pages, in order, into one markdown document.
func PagesToMarkdown(title string, pages []string) (string, error) {
	conv := newMarkdownConverter()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", title)

	for _, page := range pages {
		md, err := conv.ConvertString(mainContent(page))
		if err != nil {
			return "", fmt.Errorf("failed to convert page to markdown: %w", err)
		}
		md = strings.TrimSpace(md)
		if md == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(md)
		b.WriteString("\n")
	}
	return b.String(), nil
}

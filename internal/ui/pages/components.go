package pages

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/pgddui/pgddui/internal/dictionary"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListingID is the element id of a rendered listing. Filter requests patch
// the element in place.
const ListingID = "listing"

// ListingTable renders the heading and rows of l. Every cell is escaped.
func ListingTable(l *dictionary.Listing) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		plural := l.Kind.Plural()

		b.WriteString(`<div id="` + ListingID + `">` + "\n")
		b.WriteString("<h1>" + templ.EscapeString(cases.Title(language.English).String(plural)) +
			" <small>(" + strconv.Itoa(l.Len()) + ")</small></h1>\n")

		if len(l.Rows) == 0 {
			b.WriteString(`<p class="empty">No ` + templ.EscapeString(plural) + " found.</p>\n</div>")
			_, err := io.WriteString(w, b.String())
			return err
		}

		b.WriteString("<table class=\"listing\">\n  <thead>\n    <tr>")
		for _, h := range l.Headers {
			b.WriteString("<th>" + templ.EscapeString(h) + "</th>")
		}
		b.WriteString("</tr>\n  </thead>\n  <tbody>\n")
		for _, row := range l.Rows {
			b.WriteString("    <tr>")
			for _, c := range row.Cells {
				b.WriteString("<td>" + templ.EscapeString(c) + "</td>")
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("  </tbody>\n</table>\n</div>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

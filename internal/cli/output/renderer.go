package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
	title  cases.Caser
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}

	profile := termenv.Ascii
	if isTTY {
		profile = termenv.EnvColorProfile()
	}
	lr := lipgloss.NewRenderer(out, termenv.WithProfile(profile))

	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: NewStyles(lr),
		title:  cases.Title(language.English, cases.NoLower),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// EffectiveMode resolves ModeAuto against the terminal state.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Writer returns the output writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// Styles returns the text-mode styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a title-cased heading.
func (r *Renderer) Header(level int, text string) {
	text = r.title.String(text)
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatHeader(level, text))
		r.Println()
		return
	}
	r.Println(r.styles.Header.Render(text))
	if level == 1 {
		r.Println(r.styles.Muted.Render(strings.Repeat("─", len([]rune(text)))))
	}
}

// KeyValue writes one labelled value.
func (r *Renderer) KeyValue(key, value string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Println(FormatKeyValue(key, value))
		return
	}
	r.Printf("  %s %s\n", r.styles.Key.Render(fmt.Sprintf("%-20s", key+":")), value)
}

// StatusLine writes "label  status  detail". status is one of success,
// warning, error or skipped.
func (r *Renderer) StatusLine(label, status, detail string) {
	if r.EffectiveMode() == ModeMarkdown {
		line := fmt.Sprintf("- %s %s", statusMark(status), label)
		if detail != "" {
			line += ": " + detail
		}
		r.Println(line)
		return
	}

	var mark string
	switch status {
	case "success":
		mark = r.styles.Success.Render("✓")
	case "warning":
		mark = r.styles.Warning.Render("!")
	case "error":
		mark = r.styles.Error.Render("✗")
	default:
		mark = r.styles.Muted.Render("-")
	}
	line := fmt.Sprintf("  %s %s", mark, label)
	if detail != "" {
		line += " " + r.styles.Muted.Render(detail)
	}
	r.Println(line)
}

func statusMark(status string) string {
	switch status {
	case "success":
		return "[ok]"
	case "warning":
		return "[warn]"
	case "error":
		return "[fail]"
	default:
		return "[skip]"
	}
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.message(r.styles.Success, "✓", msg)
}

// Warning writes a warning to the error stream.
func (r *Renderer) Warning(msg string) {
	r.messageTo(r.errOut, r.styles.Warning, "Warning:", msg)
}

// Error writes an error to the error stream.
func (r *Renderer) Error(msg string) {
	r.messageTo(r.errOut, r.styles.Error, "Error:", msg)
}

// Muted writes a dimmed line.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

func (r *Renderer) message(style lipgloss.Style, prefix, msg string) {
	r.messageTo(r.out, style, prefix, msg)
}

func (r *Renderer) messageTo(w io.Writer, style lipgloss.Style, prefix, msg string) {
	if r.EffectiveMode() == ModeMarkdown {
		_, _ = fmt.Fprintf(w, "**%s** %s\n", strings.TrimSuffix(prefix, ":"), msg)
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", style.Render(prefix), msg)
}

// Table writes rows under headers: a box table in text mode, a pipe table
// in markdown mode.
func (r *Renderer) Table(headers []string, rows [][]string) {
	t := table.NewWriter()
	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	t.AppendHeader(header)
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c
		}
		t.AppendRow(cells)
	}

	if r.EffectiveMode() == ModeMarkdown {
		r.Println(t.RenderMarkdown())
		r.Println()
		return
	}
	t.SetStyle(table.StyleLight)
	r.Println(t.Render())
}

// JSON writes v as indented JSON, highlighted on a terminal.
func (r *Renderer) JSON(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if r.isTTY {
		return HighlightJSON(r.out, buf.String())
	}
	_, err := r.out.Write(buf.Bytes())
	return err
}

package commands

import (
	"fmt"
	"strings"

	"github.com/pgddui/pgddui/internal/cli/output"
	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/pgddui/pgddui/pkg/core"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Filter     string
	ShowSystem bool
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	opts := &ListOptions{}

	validKinds := make([]string, 0, len(core.AllKinds))
	for _, k := range core.AllKinds {
		validKinds = append(validKinds, k.Plural())
	}

	cmd := &cobra.Command{
		Use:   "list <kind>",
		Short: "List catalog objects of one kind",
		Long: fmt.Sprintf(`List schemas, tables, views, columns or functions as recorded by PgDD.

Kinds: %s (singular forms are accepted too).

Output adapts to environment:
  - Terminal: Styled table
  - Piped/Scripted: Markdown table (agent-friendly)

Use --output to override: auto, text, markdown, json`, strings.Join(validKinds, ", ")),
		Example: `  # List user tables
  pgddui list tables

  # Fuzzy-filter columns by qualified name
  pgddui list columns --filter users.email

  # Include system schemas, as JSON
  pgddui list schemas --show-system -o json`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: validKinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "Fuzzy filter on the qualified object name")
	cmd.Flags().BoolVar(&opts.ShowSystem, "show-system", false, "Include PostgreSQL system objects")

	return cmd
}

// ListRow is one object in the JSON output of the list command.
type ListRow struct {
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields"`
}

func runList(cmd *cobra.Command, rawKind string, opts *ListOptions) error {
	kind, err := core.ParseKind(rawKind)
	if err != nil {
		return err
	}

	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()
	if _, err := cmdCtx.Gate.Check(ctx); err != nil {
		return err
	}

	snap, err := cmdCtx.Reader.Fetch(ctx, kind, opts.ShowSystem)
	if err != nil {
		return err
	}
	listing, err := dictionary.NewListing(kind, snap)
	if err != nil {
		return err
	}
	listing = listing.Filter(opts.Filter)

	r := cmdCtx.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(listingJSON(listing))
	default:
		r.Header(1, fmt.Sprintf("%s (%d)", kind.Plural(), listing.Len()))
		if listing.Len() == 0 {
			r.Muted(emptyListingMessage(kind, opts.Filter))
			return nil
		}
		rows := make([][]string, 0, listing.Len())
		for _, row := range listing.Rows {
			rows = append(rows, row.Cells)
		}
		r.Table(listing.Headers, rows)
		return nil
	}
}

func listingJSON(l dictionary.Listing) []ListRow {
	out := make([]ListRow, 0, l.Len())
	for _, row := range l.Rows {
		fields := make(map[string]string, len(l.Headers))
		for i, h := range l.Headers {
			if i < len(row.Cells) {
				fields[h] = row.Cells[i]
			}
		}
		out = append(out, ListRow{Key: row.Key, Fields: fields})
	}
	return out
}

func emptyListingMessage(kind core.ObjectKind, filter string) string {
	if filter != "" {
		return fmt.Sprintf("No %s match %q", kind.Plural(), filter)
	}
	return fmt.Sprintf("No %s found", kind.Plural())
}

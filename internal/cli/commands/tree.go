package commands

import (
	"github.com/pgddui/pgddui/internal/dictionary"
	"github.com/spf13/cobra"
)

// TreeOptions holds options for the tree command.
type TreeOptions struct {
	Views      bool
	ShowSystem bool
}

// NewTreeCommand creates the tree command.
func NewTreeCommand() *cobra.Command {
	opts := &TreeOptions{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the schema > table > column tree as JSON",
		Long: `Print the same tree the viewer serves at /dd.json (or /dd_views.json
with --views). JSON is syntax highlighted on a terminal.`,
		Example: `  # Table tree
  pgddui tree

  # View tree including system schemas, piped to jq
  pgddui tree --views --show-system | jq '.[0]'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTree(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Views, "views", false, "Nest views instead of tables")
	cmd.Flags().BoolVar(&opts.ShowSystem, "show-system", false, "Include PostgreSQL system objects")

	return cmd
}

func runTree(cmd *cobra.Command, opts *TreeOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	tables, views, err := loadTrees(cmd, cmdCtx, opts.ShowSystem)
	if err != nil {
		return err
	}
	if opts.Views {
		return cmdCtx.Renderer.JSON(views)
	}
	return cmdCtx.Renderer.JSON(tables)
}

// loadTrees checks the extension, then fetches one snapshot and assembles
// both trees from it.
func loadTrees(cmd *cobra.Command, cmdCtx *CommandContext, showSystem bool) (dictionary.Tree, dictionary.Tree, error) {
	ctx := cmd.Context()
	if _, err := cmdCtx.Gate.Check(ctx); err != nil {
		return nil, nil, err
	}
	snap, err := cmdCtx.Reader.Snapshot(ctx, showSystem)
	if err != nil {
		return nil, nil, err
	}
	return dictionary.BuildTree(snap.Schemas, snap.Tables, snap.Columns),
		dictionary.BuildViewTree(snap.Schemas, snap.Views, snap.Columns),
		nil
}

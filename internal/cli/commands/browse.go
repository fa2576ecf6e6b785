package commands

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pgddui/pgddui/internal/cli/browse"
	"github.com/spf13/cobra"
)

// runBrowser starts the terminal UI. Tests replace it.
var runBrowser = func(cmd *cobra.Command, m browse.Model) error {
	return browse.Run(m,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	var showSystem bool

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse schemas, tables and columns in the terminal",
		Long: `Open an interactive browser over the schema > table > column tree.

Keys:
  enter / right       open the selected schema or table
  backspace / left    go back
  tab                 switch between tables and views
  /                   fuzzy filter the current list
  q                   quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tables, views, err := loadTrees(cmd, cmdCtx, showSystem)
			if err != nil {
				return err
			}
			return runBrowser(cmd, browse.New(tables, views))
		},
	}

	cmd.Flags().BoolVar(&showSystem, "show-system", false, "Include PostgreSQL system objects")

	return cmd
}

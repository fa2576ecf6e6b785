// Package cli provides the command-line interface for pgddui.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pgddui/pgddui/internal/cli/commands"
	"github.com/pgddui/pgddui/internal/cli/config"
	"github.com/pgddui/pgddui/internal/cli/output"
	"github.com/spf13/cobra"

	_ "github.com/pgddui/pgddui/pkg/adapters/postgres" // register the postgres adapter
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile   string
		envFile   string
		logCloser io.Closer
	)

	rootCmd := &cobra.Command{
		Use:   "pgddui",
		Short: "pgddui - data dictionary for PostgreSQL",
		Long: `pgddui presents the data dictionary recorded by the PgDD PostgreSQL
extension: schemas, tables, views, columns and functions with their
descriptions, sizes and row counts.

Browse it in a web viewer (ui), publish it as a static site (build, docs),
or query it from the terminal (list, tree, stats, browse).`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if skipConfig(cmd) {
				return nil
			}

			opts := config.Options{
				ConfigFile: cfgFile,
				EnvFile:    envFile,
				Flags:      cmd.Flags(),
			}
			load := config.Load
			if cmd.Annotations[commands.AnnotationLenientConfig] == "true" {
				load = config.LoadUnvalidated
			}
			cfg, err := load(opts)
			if err != nil {
				return err
			}

			logger, closer, err := config.NewLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logCloser = closer

			ctx := config.WithConfig(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.ConfigFile != "" {
				logger.Debug("using config file", "path", cfg.ConfigFile)
			}
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Data dictionary viewer for the PgDD PostgreSQL extension
`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: pgddui.yaml, searched upward)")
	flags.StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env in the project root)")
	flags.BoolP("verbose", "v", false, "Verbose output")
	flags.StringP("output", "o", "", "Output format (auto|text|markdown|json)")
	flags.String("host", "", "Database host")
	flags.Int("db-port", 0, "Database port")
	flags.String("database", "", "Database name")
	flags.String("user", "", "Database user")
	flags.String("catalog-schema", "", "Schema holding the PgDD catalog functions (default: dd_ui)")
	flags.Bool("check-version", true, "Verify the installed PgDD extension version")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, 0, len(output.Modes))
		for _, m := range output.Modes {
			modes = append(modes, string(m))
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewUICommand())
	rootCmd.AddCommand(commands.NewBuildCommand())
	rootCmd.AddCommand(commands.NewDocsCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewTreeCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewDoctorCommand())
	rootCmd.AddCommand(commands.NewBrowseCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func skipConfig(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "completion", "__complete", "__completeNoDesc":
		return true
	}
	return cmd.Annotations[commands.AnnotationSkipConfig] == "true"
}

// Execute runs the root command. Servers stop when ctx is cancelled.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for pgddui.

To load completions:

Bash:
  $ source <(pgddui completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ pgddui completion bash > /etc/bash_completion.d/pgddui
  # macOS:
  $ pgddui completion bash > $(brew --prefix)/etc/bash_completion.d/pgddui

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ pgddui completion zsh > "${fpath[1]}/_pgddui"

Fish:
  $ pgddui completion fish | source

  # To load completions for each session, execute once:
  $ pgddui completion fish > ~/.config/fish/completions/pgddui.fish

PowerShell:
  PS> pgddui completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}

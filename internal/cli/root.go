package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tabq/tabq/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "csv" | "table"
	ConfigPath string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"csv", "table"}

// NewRootCommand creates the root command for the tabq CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "tabq",
		Short: "Query tabular files and URLs with SQL",
		Long: `tabq runs a restricted single-table SELECT against a CSV or JSON
source, local or remote, and prints the filtered, ordered, projected
result.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "csv", "output format (csv|table)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default tabq.yaml)")

	// Add subcommands
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewDescribeCommand(opts))

	return cmd
}

func configureLogging(verbose bool) {
	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig resolves the configuration for a command run. A path the
// user set explicitly must exist; the default path may be absent.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}
	return config.Load(path, explicit)
}

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tabq/tabq/internal/queryer"
)

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <source>",
		Short: "Show the columns and detected types of a source",
		Long: `Fetch and load a source without running a query, then print its
column names, detected types, and row count.

Example:
  tabq describe file://data/covid.csv
  tabq describe covid --config tabq.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDescribe(opts *RootOptions, source string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	ds, err := queryer.New(cfg).Describe(cmd.Context(), source)
	if err != nil {
		return WrapExitError(ExitQueryError, "describe failed", err)
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COLUMN\tTYPE")
	types := ds.Types()
	for i, name := range ds.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, types[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d row(s)\n", ds.Nrow())
	return nil
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tabq/tabq/internal/queryer"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Output string
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run one SELECT against a tabular source",
		Long: `Run a single-table SELECT statement. The FROM clause names the
source directly (http://, https://, or file://) or through an alias
from the config file.

Example:
  tabq query 'SELECT * FROM "file://data/covid.csv" LIMIT 10'
  tabq query 'SELECT location, new_deaths FROM covid WHERE new_deaths > 500 ORDER BY new_deaths DESC'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write result to file instead of stdout")

	return cmd
}

func runQuery(opts *QueryOptions, sql string, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	q := queryer.New(cfg)
	ds, err := q.Query(cmd.Context(), sql)
	if err != nil {
		return WrapExitError(ExitQueryError, "query failed", err)
	}

	return writeDataset(cmd.OutOrStdout(), ds, opts.Format, opts.Output)
}

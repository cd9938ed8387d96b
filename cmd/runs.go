package cmd

import (
	"fmt"

	"github.com/KaramelBytes/logsum-cli/internal/store"
	"github.com/spf13/cobra"
)

var (
	runsSQLitePath string
	runsPersonRows int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect runs saved to a SQLite database",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openRunStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		runs, err := s.ListRuns(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "(no runs)")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(out, "- %s  %s  %s × %s  by %s  (%d records, %d persons)\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Dataset, r.Coefficients, r.GroupCol, r.Records, r.Persons)
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print the report of a saved run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openRunStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		run, err := s.LoadRun(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), run.Markdown(runsPersonRows))
		return nil
	},
}

func openRunStore(cmd *cobra.Command) (*store.Store, error) {
	path := runsSQLitePath
	if !cmd.Flags().Changed("sqlite") && cfg != nil {
		path = cfg.SQLitePath
	}
	if path == "" {
		return nil, fmt.Errorf("no database: pass --sqlite or set sqlite_path")
	}
	return store.Open(cmd.Context(), path)
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.PersistentFlags().StringVar(&runsSQLitePath, "sqlite", "", "SQLite database holding saved runs (overrides config)")
	runsShowCmd.Flags().IntVar(&runsPersonRows, "person-rows", 10, "number of persons to list (0 hides the table)")
}

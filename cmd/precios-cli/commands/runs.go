package commands

import (
	"os"

	"github.com/franruiloz-lab/precios-almendra/internal/runlog"
	"github.com/franruiloz-lab/precios-almendra/lib/serviceutil"
	"github.com/franruiloz-lab/precios-almendra/lib/sqliteutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var runsLimit *int

func init() {
	runsLimit = runsCmd.Flags().Int("limit", 20, "Maximum number of runs to list.")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [--limit <n>]",
	Short: "Lists recent scrape runs from the run ledger.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		db, err := sqliteutil.OpenDB(runlog.Schema, cfg.Database)
		if err != nil {
			serviceutil.Fatal("failed to open run ledger", err)
		}
		defer db.Close()

		runs, err := runlog.NewStore(db).Recent(cmd.Context(), *runsLimit)
		if err != nil {
			serviceutil.Fatal("failed to query run ledger", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Time", "Records"})
		for _, run := range runs {
			t.AppendRow(table.Row{run.Time.Format("2006-01-02 15:04"), run.Records})
		}
		t.Render()
	},
}

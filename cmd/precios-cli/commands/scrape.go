package commands

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/franruiloz-lab/precios-almendra/internal/fetch"
	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
	"github.com/franruiloz-lab/precios-almendra/internal/record"
	"github.com/franruiloz-lab/precios-almendra/internal/runlog"
	"github.com/franruiloz-lab/precios-almendra/internal/scrape"
	"github.com/franruiloz-lab/precios-almendra/internal/sitegen"
	"github.com/franruiloz-lab/precios-almendra/lib/serviceutil"
	"github.com/franruiloz-lab/precios-almendra/lib/sqliteutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var dryRun *bool

func init() {
	dryRun = scrapeCmd.Flags().Bool("dry-run", false, "Scrape and report without persisting anything.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--dry-run]",
	Short: "Scrapes every lonja page, merges new prices into the record and rebuilds the site data.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig()

		client := fetch.NewClient()
		t1 := time.Now()
		batch, summary := scrape.Run(ctx, client, cfg.sources(), cfg.extractOptions())
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		printSummary(summary)

		if summary.NoData() {
			slog.Warn("no data obtained in this run")
			fmt.Println("No observations were extracted from any market. Likely causes:")
			fmt.Println("  - the source pages changed their table structure")
			fmt.Println("  - a network error or timeout")
			fmt.Println("  - the source has not published new data")
			fmt.Println("Consider entering prices manually through the admin panel.")
			return
		}

		if *dryRun {
			printObservations(batch)
			slog.Info("dry run, nothing persisted", "records", summary.Total)
			return
		}

		existing, err := record.Load(cfg.DataFile)
		if err != nil {
			serviceutil.Fatal("failed to load historical record", err)
		}
		merged := record.Merge(existing, batch, time.Now())
		if err := record.Save(merged, cfg.DataFile); err != nil {
			serviceutil.Fatal("failed to save historical record", err)
		}
		slog.Info("historical record updated", "path", cfg.DataFile)

		if err := sitegen.WriteDataJS(cfg.DataJS, merged, record.Default()); err != nil {
			serviceutil.Fatal("failed to write site data asset", err)
		}
		slog.Info("site data asset updated", "path", cfg.DataJS)

		noteRun(cmd, cfg, summary.Total)
	},
}

// noteRun appends the run to the sqlite ledger. The ledger is informational,
// a failure here does not fail the run.
func noteRun(cmd *cobra.Command, cfg Config, records int) {
	db, err := sqliteutil.OpenDB(runlog.Schema, cfg.Database)
	if err != nil {
		slog.Warn("failed to open run ledger", "err", err)
		return
	}
	defer db.Close()

	err = runlog.NewStore(db).Note(cmd.Context(), runlog.Run{
		Time:    time.Now(),
		Records: records,
	})
	if err != nil {
		slog.Warn("failed to note run in ledger", "err", err)
	}
}

func printSummary(summary scrape.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Market", "Records", "Error"})
	for _, res := range summary.Results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		t.AppendRow(table.Row{res.Market, res.Count, errText})
	}
	t.AppendFooter(table.Row{"Total", summary.Total, ""})
	t.Render()
}

func printObservations(batch []lonja.Observation) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Market", "Date", "Prices"})
	for _, obs := range batch {
		t.AppendRow(table.Row{obs.Market, obs.Date, formatPrices(obs.Prices)})
	}
	t.Render()
}

func formatPrices(prices map[lonja.Variety]float64) string {
	keys := make([]string, 0, len(prices))
	for variety := range prices {
		keys = append(keys, string(variety))
	}
	sort.Strings(keys)

	out := ""
	for i, key := range keys {
		if i > 0 {
			out += "  "
		}
		out += fmt.Sprintf("%s=%.2f", key, prices[lonja.Variety(key)])
	}
	return out
}

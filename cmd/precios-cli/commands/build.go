package commands

import (
	"log/slog"

	"github.com/franruiloz-lab/precios-almendra/internal/record"
	"github.com/franruiloz-lab/precios-almendra/internal/sitegen"
	"github.com/franruiloz-lab/precios-almendra/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerates the prerendered site data from the persisted record, without scraping.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		rec, err := record.Load(cfg.DataFile)
		if err != nil {
			serviceutil.Fatal("failed to load historical record", err)
		}
		if rec == nil {
			slog.Info("no historical record found, nothing to do", "path", cfg.DataFile)
			return
		}

		if err := sitegen.WriteDataJS(cfg.DataJS, rec, record.Default()); err != nil {
			serviceutil.Fatal("failed to write site data asset", err)
		}
		slog.Info("site data asset updated", "path", cfg.DataJS)
	},
}

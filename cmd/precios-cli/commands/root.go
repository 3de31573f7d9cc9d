package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/franruiloz-lab/precios-almendra/lib/serviceutil"
	"github.com/franruiloz-lab/precios-almendra/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "precios-cli",
	Short: "precios-cli scrapes almond prices from the spanish lonjas and builds the site data.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		err := telemetry.SetupFromEnv(cmd.Context(), "precios-cli")
		if err != nil {
			serviceutil.Fatal("failed to setup telemetry", err)
		}
		telemetry.InstrumentPerfStats(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		err := telemetry.Shutdown(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to shutdown telemetry", err)
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

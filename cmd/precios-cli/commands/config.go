package commands

import (
	"os"

	"github.com/franruiloz-lab/precios-almendra/internal/extract"
	"github.com/franruiloz-lab/precios-almendra/internal/lonja"
	"github.com/franruiloz-lab/precios-almendra/internal/parse"
	"github.com/franruiloz-lab/precios-almendra/internal/scrape"
	"github.com/franruiloz-lab/precios-almendra/lib/configutil"
	"github.com/franruiloz-lab/precios-almendra/lib/serviceutil"

	"log/slog"
)

type Config struct {
	// DataFile is the persisted historical record document.
	DataFile string `json:"data_file"`
	// DataJS is the prerendered asset the dashboard loads.
	DataJS string `json:"data_js"`
	// Database holds the scrape run ledger.
	Database string `json:"database"`
	// Sources overrides the scraped page per market.
	Sources map[string]string `json:"sources"`
	// PriceMin/PriceMax tune the price plausibility window (€/kg).
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`
}

func loadConfig() Config {
	cfg, err := configutil.Read[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}

	if cfg.DataFile == "" {
		cfg.DataFile = "data/precios.json"
	}
	if cfg.DataJS == "" {
		cfg.DataJS = "js/data.gen.js"
	}
	if cfg.Database == "" {
		cfg.Database = "data/runs.db"
	}
	return cfg
}

func (cfg Config) sources() []scrape.Source {
	if len(cfg.Sources) == 0 {
		return scrape.DefaultSources()
	}

	var out []scrape.Source
	for name, url := range cfg.Sources {
		market, err := lonja.ParseMarket(name)
		if err != nil {
			slog.Warn("skipping configured source", "name", name, "err", err)
			continue
		}
		out = append(out, scrape.Source{Market: market, Url: url})
	}
	return out
}

func (cfg Config) extractOptions() extract.Options {
	return extract.Options{
		Bounds: parse.Bounds{Min: cfg.PriceMin, Max: cfg.PriceMax},
	}
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ktap111/kt-stock-game/internal/config"
	"github.com/ktap111/kt-stock-game/internal/httpx"
	"github.com/ktap111/kt-stock-game/internal/provider"
	"github.com/ktap111/kt-stock-game/internal/provider/static"
	"github.com/ktap111/kt-stock-game/internal/provider/yahoo"
	"github.com/ktap111/kt-stock-game/internal/quote"
)

// One-shot fetch of normalized quotes, printed as JSON for inspection.
func main() {
	var symbolsCSV string
	var detail bool
	var timeout int
	var configPath string

	flag.StringVar(&symbolsCSV, "symbols", getenv("SYMBOLS", "AAPL,MSFT,GOOGL"), "comma-separated stock symbols")
	flag.BoolVar(&detail, "detail", false, "fetch the detail shape for the first symbol instead of a batch")
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.StringVar(&configPath, "config", getenv("CONFIG_FILE", ""), "path to config.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if timeout > 0 {
		cfg.Server.RequestTimeoutSec = timeout
	}

	symbols := quote.ParseSymbols(symbolsCSV)
	if len(symbols) == 0 {
		log.Fatal("no symbols provided")
	}

	svc := quote.NewService(buildProvider(cfg), cfg.Quotes.MaxConcurrency)
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.RequestTimeoutSec)*time.Second)
	defer cancel()

	var out any
	if detail {
		d, err := svc.Detail(ctx, symbols[0])
		if err != nil {
			log.Fatalf("detail %s: %v", symbols[0], err)
		}
		out = d
	} else {
		summaries, err := svc.Summaries(ctx, symbols)
		if err != nil {
			log.Fatalf("summaries: %v", err)
		}
		out = struct {
			Stocks []quote.Summary `json:"stocks"`
		}{Stocks: summaries}
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}

func buildProvider(cfg config.Config) provider.Provider {
	if cfg.Provider == "static" {
		return static.New()
	}
	httpClient := httpx.New(time.Duration(cfg.Server.RequestTimeoutSec) * time.Second)
	if cfg.Yahoo.UserAgent != "" {
		httpClient.UserAgent = cfg.Yahoo.UserAgent
	}
	return yahoo.New(yahoo.Config{
		URL:       cfg.Yahoo.Endpoint,
		Modules:   cfg.Yahoo.Modules,
		SymbolMap: cfg.Yahoo.SymbolMap,
	}, httpClient)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

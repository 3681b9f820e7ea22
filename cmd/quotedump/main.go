package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/ktap111/kt-stock-game/internal/config"
	"github.com/ktap111/kt-stock-game/internal/httpx"
	"github.com/ktap111/kt-stock-game/internal/provider/yahoo"
	"github.com/ktap111/kt-stock-game/internal/quote"
)

// Dumps the raw flattened record per symbol. Useful for checking which
// fields the upstream actually returns before relying on them.
func main() {
	var symbolsCSV string
	var timeout int
	var configPath string

	flag.StringVar(&symbolsCSV, "symbols", "AAPL", "comma-separated stock symbols")
	flag.IntVar(&timeout, "timeout", 15, "request timeout seconds")
	flag.StringVar(&configPath, "config", "", "path to config.yaml (optional)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	httpClient := httpx.New(time.Duration(timeout) * time.Second)
	if cfg.Yahoo.UserAgent != "" {
		httpClient.UserAgent = cfg.Yahoo.UserAgent
	}
	p := yahoo.New(yahoo.Config{
		URL:       cfg.Yahoo.Endpoint,
		Modules:   cfg.Yahoo.Modules,
		SymbolMap: cfg.Yahoo.SymbolMap,
	}, httpClient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	for _, sym := range quote.ParseSymbols(symbolsCSV) {
		rec, err := p.Fetch(ctx, sym)
		if err != nil {
			log.Printf("%s: %v", sym, err)
			continue
		}
		b, _ := json.MarshalIndent(rec, "", "  ")
		fmt.Printf("%s:\n%s\n", sym, string(b))
	}
}

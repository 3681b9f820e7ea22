package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/ktap111/kt-stock-game/internal/provider"
)

// Provider serves canned records, for development without upstream access.
type Provider struct {
	Records map[string]provider.Record
}

func New() *Provider {
	return &Provider{Records: map[string]provider.Record{
		"AAPL": {
			"currentPrice":               189.84,
			"regularMarketPreviousClose": 188.01,
			"shortName":                  "Apple Inc.",
			"marketCap":                  2.95e12,
			"sector":                     "Technology",
			"industry":                   "Consumer Electronics",
		},
		"MSFT": {
			"currentPrice":               411.22,
			"regularMarketPreviousClose": 408.59,
			"shortName":                  "Microsoft Corporation",
			"marketCap":                  3.06e12,
			"sector":                     "Technology",
			"industry":                   "Software - Infrastructure",
		},
		"GOOGL": {
			"regularMarketPrice":         152.19,
			"regularMarketPreviousClose": 153.51,
			"shortName":                  "Alphabet Inc.",
			"marketCap":                  1.89e12,
			"sector":                     "Communication Services",
			"industry":                   "Internet Content & Information",
		},
	}}
}

func (p *Provider) Name() string { return "static" }

func (p *Provider) Fetch(_ context.Context, symbol string) (provider.Record, error) {
	rec, ok := p.Records[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, fmt.Errorf("static: unknown symbol %q", symbol)
	}
	return rec, nil
}

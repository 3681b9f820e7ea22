package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ktap111/kt-stock-game/internal/httpx"
	"github.com/ktap111/kt-stock-game/internal/provider"
)

type Config struct {
	Name string
	// URL is the quoteSummary base endpoint; the symbol is appended as a
	// path segment.
	URL     string
	Modules []string
	Headers map[string]string
	// SymbolMap maps internal symbols to Yahoo tickers (e.g. SPX -> ^GSPC).
	SymbolMap map[string]string
}

// Provider fetches one quoteSummary document per symbol and flattens its
// modules into a single schema-less record.
type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "Yahoo"
	}
	if cfg.URL == "" {
		cfg.URL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
	}
	if len(cfg.Modules) == 0 {
		cfg.Modules = []string{"price", "financialData", "assetProfile"}
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

func (p *Provider) Fetch(ctx context.Context, symbol string) (provider.Record, error) {
	ticker := symbol
	if v := p.cfg.SymbolMap[symbol]; v != "" {
		ticker = v
	}
	u := fmt.Sprintf("%s/%s?modules=%s", strings.TrimRight(p.cfg.URL, "/"),
		url.PathEscape(ticker), url.QueryEscape(strings.Join(p.cfg.Modules, ",")))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range p.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
		return nil, fmt.Errorf("GET %s -> %d: %s", u, resp.StatusCode, string(b))
	}

	var api apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&api); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if api.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", api.QuoteSummary.Error.Description)
	}
	if len(api.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no result for %s", symbol)
	}
	return flatten(api.QuoteSummary.Result[0]), nil
}

type apiResponse struct {
	QuoteSummary struct {
		Result []map[string]any `json:"result"`
		Error  *apiError        `json:"error"`
	} `json:"quoteSummary"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// flatten merges the module objects of one result into a flat record. Yahoo
// wraps most numeric fields as {"raw": 1.23, "fmt": "1.23"}; the raw value
// wins. Nested objects without a raw value and lists are dropped.
func flatten(modules map[string]any) provider.Record {
	rec := make(provider.Record, len(modules)*8)
	for _, mod := range modules {
		obj, ok := mod.(map[string]any)
		if !ok {
			continue
		}
		for k, v := range obj {
			switch t := v.(type) {
			case map[string]any:
				if raw, ok := t["raw"]; ok {
					rec[k] = raw
				}
			case []any:
				// companyOfficers and the like are not quote fields
			default:
				rec[k] = v
			}
		}
	}
	return rec
}

package quote

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ktap111/kt-stock-game/internal/provider"
)

// Summary is the compact per-symbol shape returned by the batch endpoint.
// Nil pointers serialize as JSON null; Error is set only for failed fetches.
type Summary struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         *float64 `json:"price"`
	Change        *float64 `json:"change"`
	ChangePercent *float64 `json:"changePercent"`
	Error         string   `json:"error,omitempty"`
}

// Detail is the richer single-symbol shape. It has no change fields and no
// error field; a detail request either produces a full object or fails.
type Detail struct {
	Symbol    string   `json:"symbol"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	MarketCap *float64 `json:"marketCap"`
	Sector    string   `json:"sector"`
	Industry  string   `json:"industry"`
}

// BuildSummary shapes a raw record into a Summary. It never fails: missing
// or unusable fields degrade to null/defaulted output.
func BuildSummary(symbol string, rec provider.Record) Summary {
	sym := normalizeSymbol(symbol)
	price := extractPrice(rec)

	var change, changePct *float64
	if price != nil {
		if prev, ok := number(rec["regularMarketPreviousClose"]); ok && prev != 0 {
			c := round2(*price - prev)
			p := round2(c / prev * 100)
			change, changePct = &c, &p
		}
	}

	return Summary{
		Symbol:        sym,
		Name:          stringField(rec, "shortName", sym),
		Price:         price,
		Change:        change,
		ChangePercent: changePct,
	}
}

// FailedSummary is the degraded batch entry for a symbol whose fetch failed.
func FailedSummary(symbol string, err error) Summary {
	sym := normalizeSymbol(symbol)
	return Summary{Symbol: sym, Name: sym, Error: err.Error()}
}

// BuildDetail shapes a raw record into a Detail. It reports false when the
// record carries no usable price field; callers map that to not-found
// instead of returning a partial object.
func BuildDetail(symbol string, rec provider.Record) (Detail, bool) {
	sym := normalizeSymbol(symbol)
	price := extractPrice(rec)
	if price == nil {
		return Detail{}, false
	}
	var marketCap *float64
	if v, ok := number(rec["marketCap"]); ok {
		marketCap = &v
	}
	return Detail{
		Symbol:    sym,
		Name:      stringField(rec, "shortName", sym),
		Price:     *price,
		MarketCap: marketCap,
		Sector:    stringField(rec, "sector", "N/A"),
		Industry:  stringField(rec, "industry", "N/A"),
	}, true
}

// extractPrice applies the price rule shared by both shapes: currentPrice
// first, falling back to regularMarketPrice whenever currentPrice is
// missing, NaN or zero. A zero currentPrice with no usable fallback yields
// absent; upstream consumers rely on this fallback order.
func extractPrice(rec provider.Record) *float64 {
	if cur, ok := number(rec["currentPrice"]); ok && cur != 0 {
		return &cur
	}
	if reg, ok := number(rec["regularMarketPrice"]); ok {
		return &reg
	}
	return nil
}

func stringField(rec provider.Record, key, def string) string {
	if s, ok := Safe(rec[key], nil).(string); ok {
		return s
	}
	return def
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

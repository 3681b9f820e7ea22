package quote

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ktap111/kt-stock-game/internal/provider"
)

func f64(v float64) *float64 { return &v }

func TestBuildSummary_DerivesChange(t *testing.T) {
	t.Parallel()

	rec := provider.Record{
		"currentPrice":               150.0,
		"regularMarketPreviousClose": 145.0,
		"shortName":                  "Apple Inc.",
	}
	got := BuildSummary("aapl", rec)

	require.Equal(t, "AAPL", got.Symbol)
	require.Equal(t, "Apple Inc.", got.Name)
	require.Equal(t, f64(150.0), got.Price)
	require.Equal(t, f64(5.0), got.Change)
	// 5 / 145 * 100 = 3.448... rounded half away from zero
	require.Equal(t, f64(3.45), got.ChangePercent)
	require.Empty(t, got.Error)
}

func TestBuildSummary_ZeroPriceFallsBackToRegularMarketPrice(t *testing.T) {
	t.Parallel()

	rec := provider.Record{
		"currentPrice":       0.0,
		"regularMarketPrice": 42.0,
	}
	got := BuildSummary("XYZ", rec)
	require.Equal(t, f64(42.0), got.Price)
}

func TestBuildSummary_ZeroPriceWithoutFallbackIsAbsent(t *testing.T) {
	t.Parallel()

	got := BuildSummary("XYZ", provider.Record{"currentPrice": 0.0})
	require.Nil(t, got.Price)
	require.Nil(t, got.Change)
	require.Nil(t, got.ChangePercent)
}

func TestBuildSummary_MissingPriceFields(t *testing.T) {
	t.Parallel()

	got := BuildSummary("msft", provider.Record{"shortName": "Microsoft"})
	require.Equal(t, "MSFT", got.Symbol)
	require.Equal(t, "Microsoft", got.Name)
	require.Nil(t, got.Price)
	require.Nil(t, got.Change)
	require.Nil(t, got.ChangePercent)
}

func TestBuildSummary_NaNPriceFallsBack(t *testing.T) {
	t.Parallel()

	rec := provider.Record{
		"currentPrice":       math.NaN(),
		"regularMarketPrice": 10.0,
	}
	got := BuildSummary("A", rec)
	require.Equal(t, f64(10.0), got.Price)
}

func TestBuildSummary_ChangeNeedsNonzeroPreviousClose(t *testing.T) {
	t.Parallel()

	for name, rec := range map[string]provider.Record{
		"zero previous close":    {"currentPrice": 150.0, "regularMarketPreviousClose": 0.0},
		"missing previous close": {"currentPrice": 150.0},
		"nan previous close":     {"currentPrice": 150.0, "regularMarketPreviousClose": math.NaN()},
	} {
		got := BuildSummary("AAPL", rec)
		require.Equal(t, f64(150.0), got.Price, name)
		require.Nil(t, got.Change, name)
		require.Nil(t, got.ChangePercent, name)
	}
}

func TestBuildSummary_NegativeChangeRounding(t *testing.T) {
	t.Parallel()

	rec := provider.Record{
		"currentPrice":               99.1,
		"regularMarketPreviousClose": 100.0,
	}
	got := BuildSummary("DN", rec)
	require.Equal(t, f64(-0.9), got.Change)
	require.Equal(t, f64(-0.9), got.ChangePercent)
}

func TestBuildSummary_NameDefaultsToSymbol(t *testing.T) {
	t.Parallel()

	got := BuildSummary(" tsla ", provider.Record{"currentPrice": 200.0})
	require.Equal(t, "TSLA", got.Symbol)
	require.Equal(t, "TSLA", got.Name)

	// a non-string shortName is not usable as a name either
	got = BuildSummary("tsla", provider.Record{"currentPrice": 200.0, "shortName": 7.0})
	require.Equal(t, "TSLA", got.Name)
}

func TestBuildSummary_Idempotent(t *testing.T) {
	t.Parallel()

	rec := provider.Record{
		"currentPrice":               150.0,
		"regularMarketPreviousClose": 145.0,
		"shortName":                  "Apple Inc.",
	}
	require.Equal(t, BuildSummary("AAPL", rec), BuildSummary("AAPL", rec))
}

func TestFailedSummary(t *testing.T) {
	t.Parallel()

	got := FailedSummary("bad", errors.New("connection refused"))
	require.Equal(t, "BAD", got.Symbol)
	require.Equal(t, "BAD", got.Name)
	require.Nil(t, got.Price)
	require.Nil(t, got.Change)
	require.Nil(t, got.ChangePercent)
	require.Equal(t, "connection refused", got.Error)
}

func TestBuildDetail_Full(t *testing.T) {
	t.Parallel()

	rec := provider.Record{
		"currentPrice": 150.0,
		"shortName":    "Apple Inc.",
		"marketCap":    2.95e12,
		"sector":       "Technology",
		"industry":     "Consumer Electronics",
	}
	got, ok := BuildDetail("aapl", rec)
	require.True(t, ok)
	require.Equal(t, Detail{
		Symbol:    "AAPL",
		Name:      "Apple Inc.",
		Price:     150.0,
		MarketCap: f64(2.95e12),
		Sector:    "Technology",
		Industry:  "Consumer Electronics",
	}, got)
}

func TestBuildDetail_DefaultsWhenSparse(t *testing.T) {
	t.Parallel()

	got, ok := BuildDetail("IBM", provider.Record{"regularMarketPrice": 170.5})
	require.True(t, ok)
	require.Equal(t, "IBM", got.Name)
	require.Nil(t, got.MarketCap)
	require.Equal(t, "N/A", got.Sector)
	require.Equal(t, "N/A", got.Industry)
}

func TestBuildDetail_NoPrice(t *testing.T) {
	t.Parallel()

	_, ok := BuildDetail("IBM", provider.Record{"shortName": "IBM Corp"})
	require.False(t, ok)

	// a zero currentPrice with nothing to fall back on is no price at all
	_, ok = BuildDetail("IBM", provider.Record{"currentPrice": 0.0})
	require.False(t, ok)
}

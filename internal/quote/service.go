package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ktap111/kt-stock-game/internal/provider"
)

// ErrNoSymbols is returned when a batch request resolves to zero symbols.
var ErrNoSymbols = errors.New("no symbols provided")

// ErrNoPriceData is returned by the detail path when the fetch succeeded but
// the record carries no usable price field.
var ErrNoPriceData = errors.New("no price data found")

// ProviderError marks an upstream fetch failure on the detail path, where it
// aborts the whole request instead of degrading.
type ProviderError struct {
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Symbol, e.Err) }
func (e *ProviderError) Unwrap() error { return e.Err }

// Service runs quote operations against a single provider.
type Service struct {
	provider provider.Provider
	limit    int
}

func NewService(p provider.Provider, maxConcurrency int) *Service {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}
	return &Service{provider: p, limit: maxConcurrency}
}

// Summaries fetches every symbol independently and returns one summary per
// symbol in input order, regardless of completion order. A failed fetch
// becomes an error entry and never aborts or affects its siblings.
func (s *Service) Summaries(ctx context.Context, symbols []string) ([]Summary, error) {
	if len(symbols) == 0 {
		return nil, ErrNoSymbols
	}

	out := make([]Summary, len(symbols))
	var g errgroup.Group
	g.SetLimit(s.limit)
	for i, sym := range symbols {
		i, sym := i, sym
		g.Go(func() error {
			rec, err := s.provider.Fetch(ctx, sym)
			if err != nil {
				out[i] = FailedSummary(sym, err)
				return nil
			}
			out[i] = BuildSummary(sym, rec)
			return nil
		})
	}
	_ = g.Wait()
	return out, nil
}

// Detail fetches and shapes a single symbol. A fetch failure surfaces as a
// *ProviderError; a record without a usable price wraps ErrNoPriceData.
func (s *Service) Detail(ctx context.Context, symbol string) (Detail, error) {
	sym := normalizeSymbol(symbol)
	rec, err := s.provider.Fetch(ctx, sym)
	if err != nil {
		return Detail{}, &ProviderError{Symbol: sym, Err: err}
	}
	d, ok := BuildDetail(sym, rec)
	if !ok {
		return Detail{}, fmt.Errorf("%w for %s", ErrNoPriceData, sym)
	}
	return d, nil
}

// ParseSymbols splits a comma-separated symbol list, trimming whitespace,
// dropping empty entries and upper-casing the rest.
func ParseSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

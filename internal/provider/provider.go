package provider

import "context"

// Record is the raw field set returned by an upstream source for one symbol.
// There is no guaranteed schema: any key may be missing, and numeric fields
// may carry NaN placeholders. Interpretation is left to the quote package.
type Record map[string]any

// Provider fetches the raw record for a single symbol. Calls are independent
// and may be issued concurrently; there is no retry and no caching.
//
//go:generate mockgen -package=quote_test -destination=../quote/mock_provider_test.go . Provider
type Provider interface {
	Name() string
	Fetch(ctx context.Context, symbol string) (Record, error)
}

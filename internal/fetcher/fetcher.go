package fetcher

import "context"

// Source is the core interface that all value sources must implement.
// Each source knows how to retrieve the latest value for a single
// tracked instrument (a stock quote, a fund valuation, ...).
type Source interface {
	// Fetch retrieves the instrument's latest value as a float64.
	// Returns an error if the fetch operation fails; implementations
	// return a *FetchError so the tracker can render the failure into
	// the instrument's output file.
	Fetch(ctx context.Context) (float64, error)

	// Symbol returns the instrument identifier this source tracks.
	Symbol() string
}

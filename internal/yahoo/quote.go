package yahoo

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"pricetracker/internal/fetcher"
	"pricetracker/internal/ratelimit"
)

// ChartResponse represents the Yahoo v8 chart API response
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol   string `json:"symbol"`
				Currency string `json:"currency"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// QuoteListResponse represents the Yahoo v7 quote API response,
// used for the market-state lookup.
type QuoteListResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol      string `json:"symbol"`
			MarketState string `json:"marketState"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// Client talks to the Yahoo Finance endpoints. A single client is shared
// by all quote fetchers and by the market-state oracle.
type Client struct {
	http *resty.Client
}

// NewClient creates a Yahoo client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		http: fetcher.NewAPIClient(baseURL),
	}
}

// LatestClose returns the most recent one-minute close of the current
// trading day for symbol.
func (c *Client) LatestClose(ctx context.Context, symbol string) (float64, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIYahoo); err != nil {
		return 0, fetcher.NewConnectionError(err)
	}

	var result ChartResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": "1m",
			"range":    "1d",
		}).
		SetResult(&result).
		Get("/v8/finance/chart/" + symbol)

	if err != nil {
		return 0, fetcher.NewProviderError(fmt.Sprintf("failed to fetch chart for %s", symbol), err)
	}

	if !resp.IsSuccess() {
		return 0, fetcher.NewProviderError(fmt.Sprintf("chart API returned status %d", resp.StatusCode()), nil)
	}

	if result.Chart.Error != nil {
		return 0, fetcher.NewProviderError(result.Chart.Error.Description, nil)
	}

	if len(result.Chart.Result) == 0 || len(result.Chart.Result[0].Indicators.Quote) == 0 {
		return 0, fetcher.NewNoDataError(symbol)
	}

	// Intraday series carry nulls for minutes without a trade; the latest
	// close is the last non-null entry.
	closes := result.Chart.Result[0].Indicators.Quote[0].Close
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i], nil
		}
	}

	return 0, fetcher.NewNoDataError(symbol)
}

// IsOpen reports whether symbol's exchange is currently trading.
// Regular hours as well as pre- and post-market sessions count as open.
func (c *Client) IsOpen(ctx context.Context, symbol string) (bool, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIYahoo); err != nil {
		return false, err
	}

	var result QuoteListResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"symbols": symbol,
			"fields":  "marketState",
		}).
		SetResult(&result).
		Get("/v7/finance/quote")

	if err != nil {
		return false, fmt.Errorf("failed to fetch market state for %s: %w", symbol, err)
	}

	if !resp.IsSuccess() {
		return false, fmt.Errorf("quote API returned status %d", resp.StatusCode())
	}

	if result.QuoteResponse.Error != nil {
		return false, fmt.Errorf("quote API error: %s", result.QuoteResponse.Error.Description)
	}

	if len(result.QuoteResponse.Result) == 0 {
		return false, fmt.Errorf("market state not found in response for %s", symbol)
	}

	switch result.QuoteResponse.Result[0].MarketState {
	case "REGULAR", "PRE", "POST":
		return true, nil
	}
	return false, nil
}

// QuoteFetcher fetches an instrument's latest intraday close from Yahoo
type QuoteFetcher struct {
	symbol string
	client *Client
}

// NewQuoteFetcher creates a quote fetcher backed by the given client
func NewQuoteFetcher(client *Client, symbol string) *QuoteFetcher {
	return &QuoteFetcher{
		symbol: symbol,
		client: client,
	}
}

// Fetch retrieves the latest close price
func (f *QuoteFetcher) Fetch(ctx context.Context) (float64, error) {
	return f.client.LatestClose(ctx, f.symbol)
}

// Symbol returns the tracked instrument identifier
func (f *QuoteFetcher) Symbol() string {
	return f.symbol
}

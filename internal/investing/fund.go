package investing

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"resty.dev/v3"

	"pricetracker/internal/fetcher"
	"pricetracker/internal/ratelimit"
)

// tableSelectors match the historical-data table across the markup
// variants the site has served over time.
var tableSelectors = []string{
	`table[data-test="historical-data-table"]`,
	`table.historical-data`,
	`table#curr_table`,
}

// FundFetcher fetches a fund's latest valuation by scraping its
// historical-data page.
type FundFetcher struct {
	symbol string
	client *resty.Client
}

// NewFundFetcher creates a fund valuation fetcher
func NewFundFetcher(symbol, baseURL string) *FundFetcher {
	return &FundFetcher{
		symbol: symbol,
		client: fetcher.NewScrapeClient(baseURL),
	}
}

// Fetch retrieves the latest valuation from the first row of the
// historical-data table. Values on the page use European notation
// ('.' thousands, ',' decimal).
func (f *FundFetcher) Fetch(ctx context.Context) (float64, error) {
	if err := ratelimit.GetLimiter().Wait(ctx, ratelimit.APIInvesting); err != nil {
		return 0, fetcher.NewConnectionError(err)
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get("/funds/" + f.symbol + "-historical-data")

	if err != nil {
		return 0, fetcher.NewConnectionError(err)
	}

	if !resp.IsSuccess() {
		return 0, fetcher.NewConnectionError(
			&httpStatusError{status: resp.Status()},
		)
	}

	return parseLatestValue(resp.String())
}

// Symbol returns the tracked instrument identifier
func (f *FundFetcher) Symbol() string {
	return f.symbol
}

// parseLatestValue extracts the second cell of the first data row of the
// historical-data table and parses it as a European-notation number.
func parseLatestValue(page string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return 0, fetcher.NewConnectionError(err)
	}

	var table *goquery.Selection
	for _, sel := range tableSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			table = s.First()
			break
		}
	}
	if table == nil {
		return 0, fetcher.NewNoTableError()
	}

	row := table.Find("tbody tr").First()
	if row.Length() == 0 {
		return 0, fetcher.NewNoRowError()
	}

	cell := row.Find("td").Eq(1)
	if cell.Length() == 0 {
		return 0, fetcher.NewNoRowError()
	}

	raw := strings.TrimSpace(cell.Text())
	value, err := fetcher.ParseEuropean(raw)
	if err != nil {
		return 0, fetcher.NewBadFormatError(raw, err)
	}

	return value, nil
}

// httpStatusError reports a non-2xx page fetch as a connection failure.
type httpStatusError struct {
	status string
}

func (e *httpStatusError) Error() string {
	return "unexpected status " + e.status
}

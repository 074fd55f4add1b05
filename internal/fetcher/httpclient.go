package fetcher

import (
	"time"

	"resty.dev/v3"
)

const (
	// DefaultTimeout is the hard per-request bound for every fetch.
	// One attempt per cycle, never retried; a slow provider must not
	// stall the loop longer than this.
	DefaultTimeout = 10 * time.Second

	// BrowserUserAgent is sent on scraping requests so the fund site
	// serves the same markup it serves a regular browser.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// NewAPIClient creates an HTTP client for JSON provider APIs.
func NewAPIClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(DefaultTimeout)
}

// NewScrapeClient creates an HTTP client for page scraping, with a
// browser-like User-Agent and the same hard timeout.
func NewScrapeClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", BrowserUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetTimeout(DefaultTimeout)
}

package investing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pricetracker/internal/fetcher"
)

const fundPage = `<!DOCTYPE html>
<html><body>
<h1>Some Fund Historical Data</h1>
<table data-test="historical-data-table">
  <thead><tr><th>Date</th><th>Price</th><th>Open</th><th>High</th><th>Low</th><th>Change %</th></tr></thead>
  <tbody>
    <tr><td>28.08.2026</td><td>1.234,56</td><td>1.230,00</td><td>1.240,00</td><td>1.228,00</td><td>0,37%</td></tr>
    <tr><td>27.08.2026</td><td>1.230,00</td><td>1.229,00</td><td>1.233,00</td><td>1.225,00</td><td>0,08%</td></tr>
  </tbody>
</table>
</body></html>`

func TestFundFetcher_Symbol(t *testing.T) {
	f := NewFundFetcher("my-fund", "http://localhost")

	if got := f.Symbol(); got != "my-fund" {
		t.Errorf("Symbol() = %q, want my-fund", got)
	}
}

func TestFundFetcher_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/funds/my-fund-historical-data" {
			t.Errorf("path = %q, want /funds/my-fund-historical-data", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("User-Agent = %q, want browser-like", ua)
		}

		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(fundPage))
	}))
	defer server.Close()

	f := NewFundFetcher("my-fund", server.URL)

	value, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}
	if value != 1234.56 {
		t.Errorf("Fetch() = %v, want 1234.56", value)
	}
}

func TestFundFetcher_Fetch_LegacyTableMarkup(t *testing.T) {
	page := `<html><body>
<table id="curr_table">
  <tbody><tr><td>28.08.2026</td><td>98,123456</td></tr></tbody>
</table>
</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	}))
	defer server.Close()

	f := NewFundFetcher("my-fund", server.URL)

	value, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() returned unexpected error: %v", err)
	}
	if value != 98.123456 {
		t.Errorf("Fetch() = %v, want 98.123456", value)
	}
}

func TestFundFetcher_Fetch_ParseFailures(t *testing.T) {
	tests := []struct {
		name     string
		page     string
		wantKind fetcher.ErrorKind
		wantText string
	}{
		{
			name:     "no table",
			page:     `<html><body><p>nothing here</p></body></html>`,
			wantKind: fetcher.KindNoTable,
			wantText: "Error: No historical data table found.",
		},
		{
			name:     "empty table",
			page:     `<html><body><table data-test="historical-data-table"><tbody></tbody></table></body></html>`,
			wantKind: fetcher.KindNoRow,
			wantText: "Error: No recent data row found.",
		},
		{
			name:     "row without value cell",
			page:     `<html><body><table data-test="historical-data-table"><tbody><tr><td>28.08.2026</td></tr></tbody></table></body></html>`,
			wantKind: fetcher.KindNoRow,
			wantText: "Error: No recent data row found.",
		},
		{
			name:     "unparseable value",
			page:     `<html><body><table data-test="historical-data-table"><tbody><tr><td>28.08.2026</td><td>n/a</td></tr></tbody></table></body></html>`,
			wantKind: fetcher.KindBadFormat,
			wantText: "Format Error: Extracted value 'n/a' is not valid.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/html")
				w.Write([]byte(tt.page))
			}))
			defer server.Close()

			f := NewFundFetcher("my-fund", server.URL)

			_, err := f.Fetch(context.Background())
			if err == nil {
				t.Fatal("Fetch() expected error, got nil")
			}

			var fe *fetcher.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error is %T, want *fetcher.FetchError", err)
			}
			if fe.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", fe.Kind, tt.wantKind)
			}
			if got := fe.OutputText(); got != tt.wantText {
				t.Errorf("OutputText() = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestFundFetcher_Fetch_HTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	f := NewFundFetcher("my-fund", server.URL)

	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() expected error, got nil")
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *fetcher.FetchError", err)
	}
	if fe.Kind != fetcher.KindConnection {
		t.Errorf("Kind = %q, want %q", fe.Kind, fetcher.KindConnection)
	}
	if got := fe.OutputText(); !strings.HasPrefix(got, "Connection Error: ") {
		t.Errorf("OutputText() = %q, want Connection Error prefix", got)
	}
}

func TestFundFetcher_Fetch_ConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	f := NewFundFetcher("my-fund", server.URL)

	_, err := f.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() expected error, got nil")
	}

	var fe *fetcher.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *fetcher.FetchError", err)
	}
	if fe.Kind != fetcher.KindConnection {
		t.Errorf("Kind = %q, want %q", fe.Kind, fetcher.KindConnection)
	}
}

package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/actuclaim/actuclaim/internal/calculation"
	"github.com/actuclaim/actuclaim/pkg/dateutil"
	"github.com/actuclaim/actuclaim/pkg/money"
	"github.com/shopspring/decimal"
)

// Fetcher retrieves rate observations for a date window. Implementations
// return an empty map on any failure.
type Fetcher interface {
	Fetch(ctx context.Context, start, end time.Time) map[time.Time]decimal.Decimal
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, start, end time.Time) map[time.Time]decimal.Decimal

func (f FetcherFunc) Fetch(ctx context.Context, start, end time.Time) map[time.Time]decimal.Decimal {
	return f(ctx, start, end)
}

const (
	// DefaultSourceURL is the Bank of Canada bond yield lookup page.
	DefaultSourceURL = "https://www.bankofcanada.ca/rates/interest-rates/lookup-bond-yields/"
	// DefaultFetchTimeout bounds each window request.
	DefaultFetchTimeout = 30 * time.Second

	seriesCode = "V39059"
)

// BankOfCanadaFetcher scrapes the 3-month treasury bill series from the
// Bank of Canada lookup page.
type BankOfCanadaFetcher struct {
	BaseURL string
	Client  *http.Client
	Logger  calculation.Logger
}

// NewBankOfCanadaFetcher creates a fetcher. Empty baseURL and zero timeout use the defaults.
func NewBankOfCanadaFetcher(baseURL string, timeout time.Duration) *BankOfCanadaFetcher {
	if baseURL == "" {
		baseURL = DefaultSourceURL
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &BankOfCanadaFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
		Logger:  calculation.NopLogger{},
	}
}

// LookupURL builds the query for a window.
func (f *BankOfCanadaFetcher) LookupURL(start, end time.Time) string {
	q := url.Values{}
	q.Set("lookupPage", "lookup_bond_yields.php")
	q.Set("startRange", "2015-03-18")
	q.Set("rangeType", "dates")
	q.Set("dFrom", start.Format(dateutil.ISO))
	q.Set("dTo", end.Format(dateutil.ISO))
	q.Set("rangeValue", "1")
	q.Set("rangeWeeklyValue", "1")
	q.Set("rangeMonthlyValue", "1")
	q.Set("series[]", "LOOKUPS_"+seriesCode)
	q.Set("submit_button", "Submit")
	return f.BaseURL + "?" + q.Encode()
}

// Fetch implements Fetcher, logging and swallowing any failure.
func (f *BankOfCanadaFetcher) Fetch(ctx context.Context, start, end time.Time) map[time.Time]decimal.Decimal {
	rates, err := f.FetchRange(ctx, start, end)
	if err != nil {
		f.Logger.Warnf("rate fetch %s to %s failed: %v", start.Format(dateutil.ISO), end.Format(dateutil.ISO), err)
		return map[time.Time]decimal.Decimal{}
	}
	return rates
}

// FetchRange requests one window and parses the response.
func (f *BankOfCanadaFetcher) FetchRange(ctx context.Context, start, end time.Time) (map[time.Time]decimal.Decimal, error) {
	u := f.LookupURL(start, end)
	f.Logger.Debugf("fetching rates from %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return ParseLookupPage(resp.Body)
}

// ParseLookupPage extracts date/rate pairs from the lookup page.
//
// The last table holds the series. It is either laid out with dates as row
// labels and a V39059 column, or with V39059 followed by one column per date.
// When the page has several tables the first one is also scanned as
// date/rate rows.
func ParseLookupPage(r io.Reader) (map[time.Time]decimal.Decimal, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rates := make(map[time.Time]decimal.Decimal)
	tables := doc.Find("table")
	if tables.Length() == 0 {
		return rates, nil
	}

	parseSeriesTable(tables.Last(), rates)
	if tables.Length() > 1 {
		parseDateRateRows(tables.First(), 0, 1, rates)
	}
	return rates, nil
}

func parseSeriesTable(table *goquery.Selection, rates map[time.Time]decimal.Decimal) {
	var headers []string
	table.Find("tr").First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(cell.Text()))
	})

	seriesIdx := -1
	for i, h := range headers {
		if h == seriesCode {
			seriesIdx = i
			break
		}
	}
	if seriesIdx < 0 {
		return
	}

	type dateColumn struct {
		index int
		date  time.Time
	}
	var dateColumns []dateColumn
	for i := seriesIdx + 1; i < len(headers); i++ {
		if t, err := time.Parse(dateutil.ISO, headers[i]); err == nil {
			dateColumns = append(dateColumns, dateColumn{i, t})
		}
	}

	if len(dateColumns) == 0 {
		parseDateRateRows(table, 0, seriesIdx, rates)
		return
	}

	// Row labels are th cells, so td positions sit one left of their header.
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		for _, dc := range dateColumns {
			if dc.index-1 < cells.Length() {
				if rate, ok := parseRateCell(cells.Eq(dc.index - 1).Text()); ok {
					rates[dc.date] = rate
				}
			}
		}
	})
}

func parseDateRateRows(table *goquery.Selection, dateIdx, rateIdx int, rates map[time.Time]decimal.Decimal) {
	table.Find("tr").Slice(1, goquery.ToEnd).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 || rateIdx >= cells.Length() {
			return
		}
		date, err := time.Parse(dateutil.ISO, strings.TrimSpace(cells.Eq(dateIdx).Text()))
		if err != nil {
			return
		}
		if rate, ok := parseRateCell(cells.Eq(rateIdx).Text()); ok {
			rates[date] = rate
		}
	})
}

func parseRateCell(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "bank holiday":
		return decimal.Zero, false
	}
	return money.TryParse(s)
}

package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"StockPrep/internal/model"
)

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
type YahooFetcher struct {
	Client    *http.Client
	BaseURL   string
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Adjclose []struct {
					Adjclose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
				Quote []struct {
					Close []interface{} `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}

// Fetch requests the adjusted close series of each symbol and merges them into
// one frame. A symbol Yahoo cannot resolve is skipped with a warning, so its
// column comes back all-NaN; transport failures abort the whole fetch.
func (f *YahooFetcher) Fetch(symbols []string, start, end string) (*model.Frame, error) {
	from, err := time.Parse(model.DateFormat, start)
	if err != nil {
		return nil, fmt.Errorf("yahoo parse start: %w", err)
	}
	to, err := time.Parse(model.DateFormat, end)
	if err != nil {
		return nil, fmt.Errorf("yahoo parse end: %w", err)
	}

	series := make(map[string][]model.PricePoint, len(symbols))
	for _, symbol := range symbols {
		points, err := f.fetchSymbol(symbol, from, to)
		if err != nil {
			if ne, ok := err.(*notFoundError); ok {
				log.Printf("[WARN] yahoo: skipping %s: %v", symbol, ne)
				continue
			}
			return nil, err
		}
		series[symbol] = points
	}
	return model.Merge(series, symbols), nil
}

// notFoundError marks per-symbol API failures that should not abort a
// multi-symbol fetch.
type notFoundError struct{ msg string }

func (e *notFoundError) Error() string { return e.msg }

func (f *YahooFetcher) fetchSymbol(symbol string, from, to time.Time) ([]model.PricePoint, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div%%7Csplit",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)),
		from.Unix(), to.AddDate(0, 0, 1).Unix())

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, &notFoundError{fmt.Sprintf("yahoo: status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, &notFoundError{fmt.Sprintf("yahoo api error: %s", chart.Chart.Error.Description)}
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, &notFoundError{"yahoo: no data returned"}
	}

	result := chart.Chart.Result[0]

	// Prefer the adjusted close series; fall back to raw close.
	var closes []interface{}
	if len(result.Indicators.Adjclose) > 0 {
		closes = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	points := make([]model.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) {
			break
		}
		price, ok := toFloat(closes[i])
		if !ok {
			continue // null bar (holiday etc.), left as a gap for the cleaner
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(ts, 0),
			Price: price,
		})
	}
	return points, nil
}

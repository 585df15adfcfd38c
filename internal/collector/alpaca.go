package collector

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockPrep/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca Market Data v2 REST API.
type AlpacaFetcher struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Client    *http.Client
}

// NewAlpacaFetcher creates a new fetcher with optional proxy support.
func NewAlpacaFetcher(baseURL, apiKey, apiSecret, proxyURL string) *AlpacaFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = "https://data.alpaca.markets"
	}
	return &AlpacaFetcher{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// alpacaBar is the expected JSON shape of a single daily bar.
type alpacaBar struct {
	Timestamp time.Time `json:"t"`
	Close     float64   `json:"c"`
}

type alpacaBarsResponse struct {
	Bars map[string][]alpacaBar `json:"bars"`
}

// Fetch requests daily bars for all symbols in one call and pivots the
// per-symbol bars into a frame. A symbol absent from the response becomes an
// all-NaN column.
func (f *AlpacaFetcher) Fetch(symbols []string, start, end string) (*model.Frame, error) {
	q := url.Values{}
	q.Set("symbols", strings.Join(symbols, ","))
	q.Set("timeframe", "1Day")
	q.Set("start", start)
	q.Set("end", end)
	q.Set("adjustment", "all")
	endpoint := fmt.Sprintf("%s/v2/stocks/bars?%s", f.BaseURL, q.Encode())

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("APCA-API-KEY-ID", f.APIKey)
		req.Header.Set("APCA-API-SECRET-KEY", f.APISecret)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpaca fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alpaca fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result alpacaBarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("alpaca decode bars: %w", err)
	}

	series := make(map[string][]model.PricePoint, len(result.Bars))
	for symbol, bars := range result.Bars {
		points := make([]model.PricePoint, len(bars))
		for i, b := range bars {
			points[i] = model.PricePoint{Date: b.Timestamp, Price: b.Close}
		}
		series[symbol] = points
	}
	return model.Merge(series, symbols), nil
}

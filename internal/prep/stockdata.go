package prep

import (
	"errors"
	"fmt"
	"time"

	"StockPrep/internal/calculator"
	"StockPrep/internal/collector"
	"StockPrep/internal/model"
)

// ErrNoData is returned by derived-metric methods before a successful Load.
var ErrNoData = errors.New("no data loaded, call Load first")

// StockData is a source-agnostic stock data container with common prep
// operations. It holds the raw fetcher output and a cleaned copy; the derived
// metrics are recomputed from the cleaned table on every call.
//
// A StockData is meant for single-owner, single-threaded use: Load mutates the
// container and takes as long as the underlying fetcher takes.
type StockData struct {
	Fetcher collector.Fetcher
	Raw     *model.Frame // unmodified fetcher output, nil until first Load
	Prices  *model.Frame // cleaned price table, nil until first Load
}

// New creates a StockData bound to the given fetcher.
func New(f collector.Fetcher) *StockData {
	return &StockData{Fetcher: f}
}

// Load fetches price data for the symbols over [start, end] and cleans it via
// forward-fill then backward-fill. Each call replaces the previously held
// tables. The container is returned for chaining.
//
// Empty symbols, unparsable dates, and start after end are rejected before the
// fetcher is invoked. A fetcher error is wrapped and propagated with the prior
// tables left untouched.
func (s *StockData) Load(symbols []string, start, end string) (*StockData, error) {
	if len(symbols) == 0 {
		return s, errors.New("no symbols requested")
	}
	from, err := time.Parse(model.DateFormat, start)
	if err != nil {
		return s, fmt.Errorf("parse start date: %w", err)
	}
	to, err := time.Parse(model.DateFormat, end)
	if err != nil {
		return s, fmt.Errorf("parse end date: %w", err)
	}
	if from.After(to) {
		return s, fmt.Errorf("start %s is after end %s", start, end)
	}

	raw, err := s.Fetcher.Fetch(symbols, start, end)
	if err != nil {
		return s, fmt.Errorf("fetch %s: %w", s.Fetcher.Name(), err)
	}
	s.Raw = raw
	s.Prices = calculator.Clean(raw)
	return s, nil
}

// Normalize returns prices divided by each column's first price, so every
// resolved series starts at 1.0.
func (s *StockData) Normalize() (*model.Frame, error) {
	if s.Prices == nil {
		return nil, ErrNoData
	}
	return calculator.Normalize(s.Prices), nil
}

// DailyReturns returns the day-over-day percentage change, one row shorter
// than the cleaned table.
func (s *StockData) DailyReturns() (*model.Frame, error) {
	if s.Prices == nil {
		return nil, ErrNoData
	}
	return calculator.DailyReturns(s.Prices), nil
}

// CumulativeReturns returns the fractional change relative to each column's
// first price at every date.
func (s *StockData) CumulativeReturns() (*model.Frame, error) {
	if s.Prices == nil {
		return nil, ErrNoData
	}
	return calculator.CumulativeReturns(s.Prices), nil
}

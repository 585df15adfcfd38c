package collector

import "StockPrep/internal/model"

// Fetcher defines the interface for retrieving historical price data.
// Implementations return a date-indexed frame with one column per requested
// symbol; symbols a vendor cannot resolve may be omitted or left all-NaN, so
// callers must not assume column presence.
type Fetcher interface {
	Fetch(symbols []string, start, end string) (*model.Frame, error)
	Name() string
}

// FetcherFunc adapts a plain function to the Fetcher interface, preserving
// the bring-your-own-fetcher contract.
type FetcherFunc func(symbols []string, start, end string) (*model.Frame, error)

func (f FetcherFunc) Fetch(symbols []string, start, end string) (*model.Frame, error) {
	return f(symbols, start, end)
}

func (f FetcherFunc) Name() string { return "func" }

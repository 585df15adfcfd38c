package collector

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"StockPrep/internal/model"
)

// CSVFetcher implements Fetcher over local per-symbol CSV files. It expects
// files like <dir>/AAPL.csv with "Date" and "Adj Close" columns.
type CSVFetcher struct {
	Dir string
}

// NewCSVFetcher creates a fetcher reading from the given directory.
func NewCSVFetcher(dir string) *CSVFetcher {
	return &CSVFetcher{Dir: dir}
}

func (f *CSVFetcher) Name() string { return "csv" }

// Fetch joins each symbol's file onto the calendar range [start, end], then
// drops dates where every symbol is missing. A missing file is an error.
func (f *CSVFetcher) Fetch(symbols []string, start, end string) (*model.Frame, error) {
	from, err := time.Parse(model.DateFormat, start)
	if err != nil {
		return nil, fmt.Errorf("csv parse start: %w", err)
	}
	to, err := time.Parse(model.DateFormat, end)
	if err != nil {
		return nil, fmt.Errorf("csv parse end: %w", err)
	}
	from, to = model.Day(from), model.Day(to)

	series := make(map[string][]model.PricePoint, len(symbols))
	for _, symbol := range symbols {
		points, err := f.readSymbol(symbol, from, to)
		if err != nil {
			return nil, err
		}
		series[symbol] = points
	}
	return model.Merge(series, symbols).DropEmptyRows(), nil
}

func (f *CSVFetcher) readSymbol(symbol string, from, to time.Time) ([]model.PricePoint, error) {
	path := filepath.Join(f.Dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv open %s: %w", symbol, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv read header %s: %w", symbol, err)
	}
	dateCol, priceCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "Date":
			dateCol = i
		case "Adj Close":
			priceCol = i
		}
	}
	if dateCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("csv %s: missing Date or Adj Close column", symbol)
	}

	var points []model.PricePoint
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		date, err := time.Parse(model.DateFormat, strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("csv %s: parse date %q: %w", symbol, record[dateCol], err)
		}
		date = model.Day(date)
		if date.Before(from) || date.After(to) {
			continue
		}
		raw := strings.TrimSpace(record[priceCol])
		price := math.NaN()
		if raw != "" && !strings.EqualFold(raw, "nan") && !strings.EqualFold(raw, "null") {
			price, err = strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("csv %s: parse price %q: %w", symbol, raw, err)
			}
		}
		points = append(points, model.PricePoint{Date: date, Price: price})
	}
	return points, nil
}

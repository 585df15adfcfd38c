package collector

import (
	"time"

	"StockPrep/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Frame *model.Frame
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) Fetch(symbols []string, start, end string) (*model.Frame, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Frame != nil {
		return m.Frame, nil
	}
	return generateMockFrame(symbols, start, end)
}

// generateMockFrame builds a gently trending series per symbol over the
// requested calendar range.
func generateMockFrame(symbols []string, start, end string) (*model.Frame, error) {
	from, err := time.Parse(model.DateFormat, start)
	if err != nil {
		return nil, err
	}
	to, err := time.Parse(model.DateFormat, end)
	if err != nil {
		return nil, err
	}
	var dates []time.Time
	for d := model.Day(from); !d.After(model.Day(to)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	f := model.NewFrame(dates, symbols)
	for c := range symbols {
		base := 100.0 * float64(c+1)
		for r := range dates {
			f.Set(r, c, base*(1+float64(r)*0.001))
		}
	}
	return f, nil
}

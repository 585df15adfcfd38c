package model

import (
	"math"
	"sort"
	"time"
)

// DateFormat is the ISO-8601 day format used across all fetchers.
const DateFormat = "2006-01-02"

// PricePoint is a single (date, adjusted close) observation for one symbol.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// Frame is a date-indexed price table: one row per trading date (ascending,
// unique), one column per symbol. Missing cells hold NaN so that arithmetic
// propagates "missing" instead of panicking.
type Frame struct {
	Dates   []time.Time
	Symbols []string
	Data    [][]float64 // column-major: Data[col][row]
}

// NewFrame creates a frame of the given shape with every cell set to NaN.
func NewFrame(dates []time.Time, symbols []string) *Frame {
	f := &Frame{
		Dates:   dates,
		Symbols: symbols,
		Data:    make([][]float64, len(symbols)),
	}
	for c := range f.Data {
		col := make([]float64, len(dates))
		for r := range col {
			col[r] = math.NaN()
		}
		f.Data[c] = col
	}
	return f
}

// NumRows returns the number of dates in the frame.
func (f *Frame) NumRows() int { return len(f.Dates) }

// NumCols returns the number of symbol columns in the frame.
func (f *Frame) NumCols() int { return len(f.Symbols) }

// IsEmpty reports whether the frame has no rows or no columns.
func (f *Frame) IsEmpty() bool { return f.NumRows() == 0 || f.NumCols() == 0 }

// At returns the cell at (row, col).
func (f *Frame) At(row, col int) float64 { return f.Data[col][row] }

// Set writes the cell at (row, col).
func (f *Frame) Set(row, col int, v float64) { f.Data[col][row] = v }

// ColIndex returns the column index for a symbol, or -1 if absent.
func (f *Frame) ColIndex(symbol string) int {
	for c, s := range f.Symbols {
		if s == symbol {
			return c
		}
	}
	return -1
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	out := &Frame{
		Dates:   append([]time.Time(nil), f.Dates...),
		Symbols: append([]string(nil), f.Symbols...),
		Data:    make([][]float64, len(f.Data)),
	}
	for c, col := range f.Data {
		out.Data[c] = append([]float64(nil), col...)
	}
	return out
}

// Merge pivots per-symbol point series into a single frame over the union of
// their dates. Column order follows the order slice; symbols without a series
// become all-NaN columns. Dates are normalized to UTC midnight so the same
// trading day lines up across vendors.
func Merge(series map[string][]PricePoint, order []string) *Frame {
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, points := range series {
		for _, p := range points {
			d := Day(p.Date)
			if !seen[d] {
				seen[d] = true
				dates = append(dates, d)
			}
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	rowOf := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		rowOf[d] = i
	}

	f := NewFrame(dates, order)
	for c, symbol := range order {
		for _, p := range series[symbol] {
			if r, ok := rowOf[Day(p.Date)]; ok {
				f.Data[c][r] = p.Price
			}
		}
	}
	return f
}

// DropEmptyRows returns a copy of the frame without the dates where every
// column is NaN.
func (f *Frame) DropEmptyRows() *Frame {
	keep := make([]int, 0, f.NumRows())
	for r := 0; r < f.NumRows(); r++ {
		for c := 0; c < f.NumCols(); c++ {
			if !math.IsNaN(f.Data[c][r]) {
				keep = append(keep, r)
				break
			}
		}
	}
	dates := make([]time.Time, len(keep))
	for i, r := range keep {
		dates[i] = f.Dates[r]
	}
	out := NewFrame(dates, append([]string(nil), f.Symbols...))
	for c := range f.Data {
		for i, r := range keep {
			out.Data[c][i] = f.Data[c][r]
		}
	}
	return out
}

// Day truncates a timestamp to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package calculator

import (
	"time"

	"StockPrep/internal/model"
)

// Normalize divides every column by its first-row price so all series start at
// 1.0. An all-NaN column stays all-NaN: dividing by NaN propagates per IEEE
// rules instead of raising.
func Normalize(f *model.Frame) *model.Frame {
	out := f.Clone()
	if out.NumRows() == 0 {
		return out
	}
	for c := range out.Data {
		first := out.Data[c][0]
		for r := range out.Data[c] {
			out.Data[c][r] /= first
		}
	}
	return out
}

// DailyReturns computes the simple percentage change between consecutive rows,
// (p[t]-p[t-1])/p[t-1]. The first row has no predecessor and is dropped, so
// the result has one fewer row than the input.
func DailyReturns(f *model.Frame) *model.Frame {
	if f.NumRows() <= 1 {
		return model.NewFrame(nil, append([]string(nil), f.Symbols...))
	}
	dates := append([]time.Time(nil), f.Dates[1:]...)
	out := model.NewFrame(dates, append([]string(nil), f.Symbols...))
	for c := range f.Data {
		for r := 1; r < f.NumRows(); r++ {
			out.Data[c][r-1] = (f.Data[c][r] - f.Data[c][r-1]) / f.Data[c][r-1]
		}
	}
	return out
}

// CumulativeReturns computes p[t]/p[t0] - 1 per column: same row count as the
// input, first row 0.0 for every column with a valid first price.
func CumulativeReturns(f *model.Frame) *model.Frame {
	out := f.Clone()
	if out.NumRows() == 0 {
		return out
	}
	for c := range out.Data {
		first := out.Data[c][0]
		for r := range out.Data[c] {
			out.Data[c][r] = out.Data[c][r]/first - 1
		}
	}
	return out
}

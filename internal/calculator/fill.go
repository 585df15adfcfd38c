package calculator

import (
	"math"

	"StockPrep/internal/model"
)

// ForwardFill replaces each NaN cell with the nearest preceding non-NaN value
// in its column. Leading NaN cells are left untouched.
func ForwardFill(f *model.Frame) *model.Frame {
	out := f.Clone()
	for c := range out.Data {
		last := math.NaN()
		for r := range out.Data[c] {
			if math.IsNaN(out.Data[c][r]) {
				out.Data[c][r] = last
			} else {
				last = out.Data[c][r]
			}
		}
	}
	return out
}

// BackwardFill replaces each NaN cell with the nearest following non-NaN value
// in its column. Trailing NaN cells are left untouched.
func BackwardFill(f *model.Frame) *model.Frame {
	out := f.Clone()
	for c := range out.Data {
		next := math.NaN()
		for r := len(out.Data[c]) - 1; r >= 0; r-- {
			if math.IsNaN(out.Data[c][r]) {
				out.Data[c][r] = next
			} else {
				next = out.Data[c][r]
			}
		}
	}
	return out
}

// Clean resolves gaps by forward-fill then backward-fill. After cleaning no
// cell is NaN unless its entire column is NaN (a symbol that never resolved).
func Clean(f *model.Frame) *model.Frame {
	return BackwardFill(ForwardFill(f))
}

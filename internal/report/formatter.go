package report

import (
	"fmt"
	"math"
	"strings"

	"StockPrep/internal/model"
)

// FormatFrame renders a frame as a plain-text table. At most maxRows data rows
// are shown, split between the head and tail of the series; maxRows <= 0 shows
// everything.
func FormatFrame(title string, f *model.Frame, maxRows int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s (%d rows x %d cols)\n", title, f.NumRows(), f.NumCols()))
	if f.IsEmpty() {
		b.WriteString("  (empty)\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  %-12s", "date"))
	for _, s := range f.Symbols {
		b.WriteString(fmt.Sprintf(" %12s", s))
	}
	b.WriteString("\n")

	rows := make([]int, 0, f.NumRows())
	if maxRows <= 0 || f.NumRows() <= maxRows {
		for r := 0; r < f.NumRows(); r++ {
			rows = append(rows, r)
		}
	} else {
		head := maxRows / 2
		tail := maxRows - head
		for r := 0; r < head; r++ {
			rows = append(rows, r)
		}
		rows = append(rows, -1) // ellipsis marker
		for r := f.NumRows() - tail; r < f.NumRows(); r++ {
			rows = append(rows, r)
		}
	}

	for _, r := range rows {
		if r < 0 {
			b.WriteString("  ...\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  %-12s", f.Dates[r].Format(model.DateFormat)))
		for c := range f.Symbols {
			v := f.At(r, c)
			if math.IsNaN(v) {
				b.WriteString(fmt.Sprintf(" %12s", "-"))
			} else {
				b.WriteString(fmt.Sprintf(" %12.4f", v))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatLoadSummary renders a one-load overview: range, shape, and the
// cumulative return each symbol ended the period with.
func FormatLoadSummary(source string, symbols []string, start, end string, cumulative *model.Frame) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("loaded %s from %s, %s .. %s\n", strings.Join(symbols, ","), source, start, end))
	if cumulative.IsEmpty() {
		b.WriteString("  no rows returned\n")
		return b.String()
	}
	last := cumulative.NumRows() - 1
	for c, s := range cumulative.Symbols {
		v := cumulative.At(last, c)
		if math.IsNaN(v) {
			b.WriteString(fmt.Sprintf("  %-8s unresolved\n", s))
		} else {
			b.WriteString(fmt.Sprintf("  %-8s %+.2f%%\n", s, v*100))
		}
	}
	return b.String()
}

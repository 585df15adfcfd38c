package collector

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, symbol, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, symbol+".csv"), []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func TestCSVFetcher_JoinsSymbols(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", "Date,Adj Close\n2023-01-02,130.5\n2023-01-03,131.0\n")
	writeCSV(t, dir, "GOOG", "Date,Adj Close\n2023-01-03,90.0\n2023-01-04,91.5\n")

	f, err := NewCSVFetcher(dir).Fetch([]string{"AAPL", "GOOG"}, "2023-01-01", "2023-01-05")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if f.NumRows() != 3 {
		t.Fatalf("expected 3 rows (union of dates), got %d", f.NumRows())
	}
	if got := f.At(0, f.ColIndex("AAPL")); got != 130.5 {
		t.Errorf("AAPL first row: expected 130.5, got %v", got)
	}
	if got := f.At(0, f.ColIndex("GOOG")); !math.IsNaN(got) {
		t.Errorf("GOOG first row: expected NaN, got %v", got)
	}
	if got := f.At(2, f.ColIndex("GOOG")); got != 91.5 {
		t.Errorf("GOOG last row: expected 91.5, got %v", got)
	}
}

func TestCSVFetcher_FiltersDateRange(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", "Date,Adj Close\n2022-12-30,120.0\n2023-01-02,130.5\n2023-02-01,140.0\n")

	f, err := NewCSVFetcher(dir).Fetch([]string{"AAPL"}, "2023-01-01", "2023-01-31")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if f.NumRows() != 1 {
		t.Fatalf("expected only the in-range row, got %d rows", f.NumRows())
	}
	if got := f.At(0, 0); got != 130.5 {
		t.Errorf("expected 130.5, got %v", got)
	}
}

func TestCSVFetcher_NaNValuesBecomeGaps(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", "Date,Adj Close\n2023-01-02,130.5\n2023-01-03,nan\n2023-01-04,132.0\n")

	f, err := NewCSVFetcher(dir).Fetch([]string{"AAPL"}, "2023-01-01", "2023-01-05")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// The nan-only row is all-missing across the single symbol, so it is dropped.
	if f.NumRows() != 2 {
		t.Fatalf("expected 2 rows after dropping the all-missing one, got %d", f.NumRows())
	}
}

func TestCSVFetcher_MissingFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewCSVFetcher(dir).Fetch([]string{"NOPE"}, "2023-01-01", "2023-01-05"); err == nil {
		t.Fatal("expected error for a missing symbol file")
	}
}

func TestCSVFetcher_MissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "AAPL", "Day,Close\n2023-01-02,130.5\n")
	if _, err := NewCSVFetcher(dir).Fetch([]string{"AAPL"}, "2023-01-01", "2023-01-05"); err == nil {
		t.Fatal("expected error for missing Date/Adj Close header")
	}
}

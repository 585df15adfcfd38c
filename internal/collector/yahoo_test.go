package collector

import (
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chartBody(timestamps []int64, closes []float64) string {
	ts := make([]string, len(timestamps))
	for i, t := range timestamps {
		ts[i] = fmt.Sprintf("%d", t)
	}
	cs := make([]string, len(closes))
	for i, c := range closes {
		if math.IsNaN(c) {
			cs[i] = "null"
		} else {
			cs[i] = fmt.Sprintf("%g", c)
		}
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],
		"indicators":{"adjclose":[{"adjclose":[%s]}],"quote":[{"close":[%s]}]}}],"error":null}}`,
		strings.Join(ts, ","), strings.Join(cs, ","), strings.Join(cs, ","))
}

func newYahooTestServer(t *testing.T, handler http.HandlerFunc) *YahooFetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f
}

func TestYahooFetcher_ParsesAdjClose(t *testing.T) {
	d1 := time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC).Unix()
	d2 := time.Date(2023, 1, 3, 14, 30, 0, 0, time.UTC).Unix()

	f := newYahooTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/v8/finance/chart/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, chartBody([]int64{d1, d2}, []float64{130.5, 131.25}))
	})

	frame, err := f.Fetch([]string{"AAPL"}, "2023-01-01", "2023-01-05")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if frame.NumRows() != 2 || frame.NumCols() != 1 {
		t.Fatalf("expected 2x1 frame, got %dx%d", frame.NumRows(), frame.NumCols())
	}
	if got := frame.At(0, 0); got != 130.5 {
		t.Errorf("expected 130.5, got %v", got)
	}
	if got := frame.At(1, 0); got != 131.25 {
		t.Errorf("expected 131.25, got %v", got)
	}
}

func TestYahooFetcher_NullBarsBecomeGaps(t *testing.T) {
	base := time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC)
	stamps := []int64{base.Unix(), base.AddDate(0, 0, 1).Unix(), base.AddDate(0, 0, 2).Unix()}

	f := newYahooTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, chartBody(stamps, []float64{10, math.NaN(), 20}))
	})

	frame, err := f.Fetch([]string{"AAPL"}, "2023-01-01", "2023-01-05")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// The null bar contributes no point, so its date is absent entirely.
	if frame.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", frame.NumRows())
	}
}

func TestYahooFetcher_SkipsUnresolvedSymbol(t *testing.T) {
	d1 := time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC).Unix()

	f := newYahooTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "GHOST") {
			fmt.Fprint(w, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)
			return
		}
		fmt.Fprint(w, chartBody([]int64{d1}, []float64{130.5}))
	})

	frame, err := f.Fetch([]string{"AAPL", "GHOST"}, "2023-01-01", "2023-01-05")
	if err != nil {
		t.Fatalf("an unresolved symbol should not fail the fetch: %v", err)
	}
	c := frame.ColIndex("GHOST")
	if c < 0 {
		t.Fatal("requested symbol must keep its column")
	}
	for r := 0; r < frame.NumRows(); r++ {
		if !math.IsNaN(frame.At(r, c)) {
			t.Fatalf("GHOST row %d: expected NaN", r)
		}
	}
}

func TestYahooFetcher_ServerError(t *testing.T) {
	f := newYahooTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusInternalServerError)
	})
	if _, err := f.Fetch([]string{"AAPL"}, "2023-01-01", "2023-01-05"); err == nil {
		t.Fatal("expected error on HTTP 500")
	}
}

func TestYahooFetcher_SymbolAlias(t *testing.T) {
	var gotPath string
	d1 := time.Date(2023, 1, 2, 14, 30, 0, 0, time.UTC).Unix()
	f := newYahooTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartBody([]int64{d1}, []float64{4000}))
	})

	if _, err := f.Fetch([]string{"SPX500"}, "2023-01-01", "2023-01-05"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(gotPath, "%5EGSPC") && !strings.Contains(gotPath, "^GSPC") {
		t.Errorf("expected aliased ticker in path, got %s", gotPath)
	}
}

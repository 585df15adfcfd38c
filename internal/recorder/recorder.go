package recorder

import (
	"time"

	"StockPrep/internal/model"
)

// LoadSnapshot holds everything worth persisting about one successful load.
type LoadSnapshot struct {
	Source    string
	Symbols   []string
	Start     string
	End       string
	Prices    *model.Frame // cleaned table
	FetchedAt time.Time
}

// Recorder persists load history for later analysis.
type Recorder interface {
	RecordLoad(snap *LoadSnapshot) error
	Close() error
}

package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"StockPrep/internal/model"
	"StockPrep/internal/prep"
	"StockPrep/internal/recorder"
	"StockPrep/internal/report"

	"github.com/robfig/cron/v3"
)

// Scheduler re-runs the load on a cron schedule and records each snapshot.
type Scheduler struct {
	Cron     *cron.Cron
	Data     *prep.StockData
	Recorder recorder.Recorder
	Symbols  []string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, data *prep.StockData, rec recorder.Recorder, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Data:     data,
		Recorder: rec,
		Symbols:  symbols,
		Ctx:      ctx,
	}
}

// RegisterRefresh registers the periodic refresh task.
func (s *Scheduler) RegisterRefresh(refreshCron string) error {
	if _, err := s.Cron.AddFunc(refreshCron, s.refreshTask); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.refreshTask()
}

// refreshTask loads a trailing window ending today so each run picks up the
// newest bars.
func (s *Scheduler) refreshTask() {
	log.Println("[INFO] running refresh task")
	end := time.Now().Format(model.DateFormat)
	start := time.Now().AddDate(-1, 0, 0).Format(model.DateFormat)

	if _, err := s.Data.Load(s.Symbols, start, end); err != nil {
		log.Printf("[ERROR] refresh load: %v", err)
		return
	}

	cumulative, err := s.Data.CumulativeReturns()
	if err != nil {
		log.Printf("[ERROR] refresh returns: %v", err)
		return
	}
	log.Printf("[INFO] %s", report.FormatLoadSummary(s.Data.Fetcher.Name(), s.Symbols, start, end, cumulative))

	if err := s.Recorder.RecordLoad(&recorder.LoadSnapshot{
		Source:    s.Data.Fetcher.Name(),
		Symbols:   s.Symbols,
		Start:     start,
		End:       end,
		Prices:    s.Data.Prices,
		FetchedAt: time.Now(),
	}); err != nil {
		log.Printf("[ERROR] record load: %v", err)
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockPrep/internal/collector"
	"StockPrep/internal/config"
	"StockPrep/internal/prep"
	"StockPrep/internal/recorder"
	"StockPrep/internal/report"
	"StockPrep/internal/scheduler"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] stockprep starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Kind {
	case "alpaca":
		fetcher = collector.NewAlpacaFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.APISecret, cfg.Proxy)
	case "csv":
		fetcher = collector.NewCSVFetcher(cfg.DataSource.DataDir)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	data := prep.New(fetcher)

	// One-shot mode: load once, print the derived tables, exit.
	if cfg.Schedule.RefreshCron == "" {
		runOnce(data, rec, cfg)
		return
	}

	// Watch mode: refresh on the configured cron schedule.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, data, rec, cfg.Symbols)
	if err := sched.RegisterRefresh(cfg.Schedule.RefreshCron); err != nil {
		log.Fatalf("[FATAL] register refresh task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, refreshing now")
		go sched.RunNow()
	}

	log.Println("[INFO] stockprep is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] stockprep stopped")
}

func runOnce(data *prep.StockData, rec recorder.Recorder, cfg *config.Config) {
	if _, err := data.Load(cfg.Symbols, cfg.Range.Start, cfg.Range.End); err != nil {
		log.Fatalf("[FATAL] load: %v", err)
	}

	normalized, err := data.Normalize()
	if err != nil {
		log.Fatalf("[FATAL] normalize: %v", err)
	}
	daily, err := data.DailyReturns()
	if err != nil {
		log.Fatalf("[FATAL] daily returns: %v", err)
	}
	cumulative, err := data.CumulativeReturns()
	if err != nil {
		log.Fatalf("[FATAL] cumulative returns: %v", err)
	}

	fmt.Print(report.FormatLoadSummary(data.Fetcher.Name(), cfg.Symbols, cfg.Range.Start, cfg.Range.End, cumulative))
	fmt.Println()
	fmt.Print(report.FormatFrame("Normalized prices", normalized, 10))
	fmt.Println()
	fmt.Print(report.FormatFrame("Daily returns", daily, 10))
	fmt.Println()
	fmt.Print(report.FormatFrame("Cumulative returns", cumulative, 10))

	if err := rec.RecordLoad(&recorder.LoadSnapshot{
		Source:  data.Fetcher.Name(),
		Symbols: cfg.Symbols,
		Start:   cfg.Range.Start,
		End:     cfg.Range.End,
		Prices:  data.Prices,
	}); err != nil {
		log.Printf("[ERROR] record load: %v", err)
	}
}

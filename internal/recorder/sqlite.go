package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockPrep/internal/model"
)

// SQLiteRecorder persists load history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read while the refresher writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS loads (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			source     TEXT,
			symbols    TEXT,
			start_date TEXT,
			end_date   TEXT,
			row_count  INTEGER,
			col_count  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_loads_ts ON loads(timestamp)`,

		`CREATE TABLE IF NOT EXISTS prices (
			symbol TEXT NOT NULL,
			date   TEXT NOT NULL,
			close  REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordLoad stores the load metadata and upserts every non-missing cleaned
// price cell.
func (r *SQLiteRecorder) RecordLoad(snap *LoadSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	f := snap.Prices

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO loads
		(timestamp, source, symbols, start_date, end_date, row_count, col_count)
		VALUES (?,?,?,?,?,?,?)`,
		fetchedAt.Unix(), snap.Source, strings.Join(snap.Symbols, ","),
		snap.Start, snap.End, f.NumRows(), f.NumCols(),
	); err != nil {
		return fmt.Errorf("insert load: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO prices (symbol, date, close) VALUES (?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET close=excluded.close`)
	if err != nil {
		return fmt.Errorf("prepare prices: %w", err)
	}
	defer stmt.Close()

	for c, symbol := range f.Symbols {
		for row := 0; row < f.NumRows(); row++ {
			v := f.At(row, c)
			if math.IsNaN(v) {
				continue
			}
			if _, err := stmt.Exec(symbol, f.Dates[row].Format(model.DateFormat), v); err != nil {
				return fmt.Errorf("insert price %s: %w", symbol, err)
			}
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

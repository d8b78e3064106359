package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CashCycle/internal/model"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
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

	// WAL mode for better concurrent read performance (dashboards read while
	// the service writes).
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
		`CREATE TABLE IF NOT EXISTS day_advances (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			sim_date       TEXT NOT NULL,
			event          TEXT,
			fleet_net_flow INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_advance_ts ON day_advances(timestamp)`,

		`CREATE TABLE IF NOT EXISTS forecasts (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			for_date          TEXT NOT NULL,
			surplus_count     INTEGER,
			deficit_count     INTEGER,
			stable_count      INTEGER,
			transfer_count    INTEGER,
			refill_count      INTEGER,
			estimated_savings INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_forecast_ts ON forecasts(timestamp)`,

		`CREATE TABLE IF NOT EXISTS transfers (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			action_id   TEXT NOT NULL,
			action      TEXT NOT NULL,
			source      TEXT,
			destination INTEGER,
			amount      INTEGER,
			notes       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transfer_ts ON transfers(timestamp)`,

		`CREATE TABLE IF NOT EXISTS resets (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			days      INTEGER,
			machines  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reset_ts ON resets(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAdvance(evt *AdvanceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO day_advances
		(timestamp, sim_date, event, fleet_net_flow)
		VALUES (?,?,?,?)`,
		time.Now().Unix(), evt.Date, evt.Event, evt.FleetNetFlow,
	)
	return err
}

func (r *SQLiteRecorder) RecordForecast(evt *ForecastEvent, schedule []model.TransferAction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	if _, err := r.db.Exec(`INSERT INTO forecasts
		(timestamp, for_date, surplus_count, deficit_count, stable_count,
		 transfer_count, refill_count, estimated_savings)
		VALUES (?,?,?,?,?,?,?,?)`,
		now, evt.ForDate, evt.SurplusCount, evt.DeficitCount, evt.StableCount,
		evt.TransferCount, evt.RefillCount, evt.EstimatedSavings,
	); err != nil {
		return err
	}

	for _, a := range schedule {
		if _, err := r.db.Exec(`INSERT INTO transfers
			(timestamp, action_id, action, source, destination, amount, notes)
			VALUES (?,?,?,?,?,?,?)`,
			now, a.ID, string(a.Action), a.Source, a.Destination, a.Amount, a.Notes,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordReset(evt *ResetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO resets (timestamp, days, machines) VALUES (?,?,?)`,
		time.Now().Unix(), evt.Days, evt.Machines,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"sell-monitor/internal/models"
)

// SQLiteStore implements SnapshotStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based snapshot store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Historical sell alerts, append-only
	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		ticker TEXT NOT NULL,
		advice TEXT NOT NULL,
		buy_price REAL NOT NULL,
		current_price REAL NOT NULL,
		return_pct REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_ticker ON alerts(ticker);

	-- Per-ticker running maxima, one row per ticker
	CREATE TABLE IF NOT EXISTS high_water_marks (
		ticker TEXT PRIMARY KEY,
		max_return_pct REAL NOT NULL,
		max_price REAL NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveAlert appends one sell alert to the history.
func (s *SQLiteStore) SaveAlert(ctx context.Context, entry models.AlertEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (timestamp, ticker, advice, buy_price, current_price, return_pct)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Timestamp.Time, entry.Ticker, string(entry.Advice),
		entry.BuyPrice, entry.CurrentPrice, entry.ReturnPct,
	)
	if err != nil {
		return fmt.Errorf("saving alert: %w", err)
	}
	return nil
}

// GetAlerts returns alerts in insertion order, oldest first. A limit of 0
// means no limit.
func (s *SQLiteStore) GetAlerts(ctx context.Context, limit int) ([]models.AlertEntry, error) {
	query := `
		SELECT timestamp, ticker, advice, buy_price, current_price, return_pct
		FROM alerts ORDER BY id ASC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying alerts: %w", err)
	}
	defer rows.Close()

	var entries []models.AlertEntry
	for rows.Next() {
		var entry models.AlertEntry
		var ts time.Time
		var advice string
		if err := rows.Scan(&ts, &entry.Ticker, &advice,
			&entry.BuyPrice, &entry.CurrentPrice, &entry.ReturnPct); err != nil {
			return nil, fmt.Errorf("scanning alert: %w", err)
		}
		entry.Timestamp = models.CSVTime{Time: ts}
		entry.Advice = models.Advice(advice)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// SaveHighWaterMarks upserts the given marks.
func (s *SQLiteStore) SaveHighWaterMarks(ctx context.Context, marks []models.HighWaterMark) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO high_water_marks (ticker, max_return_pct, max_price, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ticker) DO UPDATE SET
			max_return_pct = MAX(max_return_pct, excluded.max_return_pct),
			max_price = MAX(max_price, excluded.max_price),
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, m := range marks {
		if _, err := stmt.ExecContext(ctx, m.Ticker, m.MaxReturnPct, m.MaxPrice, m.UpdatedAt); err != nil {
			return fmt.Errorf("upserting mark for %s: %w", m.Ticker, err)
		}
	}

	return tx.Commit()
}

// LoadHighWaterMarks returns all persisted marks.
func (s *SQLiteStore) LoadHighWaterMarks(ctx context.Context) ([]models.HighWaterMark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ticker, max_return_pct, max_price, updated_at
		FROM high_water_marks ORDER BY ticker`)
	if err != nil {
		return nil, fmt.Errorf("querying high water marks: %w", err)
	}
	defer rows.Close()

	var marks []models.HighWaterMark
	for rows.Next() {
		var m models.HighWaterMark
		if err := rows.Scan(&m.Ticker, &m.MaxReturnPct, &m.MaxPrice, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning mark: %w", err)
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

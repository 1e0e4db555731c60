package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"backcast/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ BarStore = (*SQLiteStore)(nil)

// SQLiteStore implements BarStore backed by a single SQLite database. It
// suits smaller datasets where one portable file beats a Parquet tree.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS bars (
	market      TEXT    NOT NULL,
	symbol      TEXT    NOT NULL,
	timestamp   INTEGER NOT NULL, -- Unix ms
	open        REAL    NOT NULL,
	high        REAL    NOT NULL,
	low         REAL    NOT NULL,
	close       REAL    NOT NULL,
	volume      INTEGER NOT NULL,
	trade_count INTEGER NOT NULL,
	vwap        REAL    NOT NULL,
	PRIMARY KEY (market, symbol, timestamp)
);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures the
// schema exists, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// WriteBars upserts a batch of bars in a single transaction.
func (s *SQLiteStore) WriteBars(ctx context.Context, market string, bars []domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO bars
			(market, symbol, timestamp, open, high, low, close, volume, trade_count, vwap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.ExecContext(ctx,
			market, b.Symbol, b.Timestamp.UnixMilli(),
			b.Open, b.High, b.Low, b.Close,
			b.Volume, b.TradeCount, b.VWAP,
		); err != nil {
			return fmt.Errorf("inserting bar %s@%s: %w", b.Symbol, b.Timestamp, err)
		}
	}

	return tx.Commit()
}

// ReadBars returns bars for the symbol and market within [start, end],
// sorted by timestamp.
func (s *SQLiteStore) ReadBars(ctx context.Context, symbol, market string, start, end time.Time) ([]domain.Bar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT symbol, timestamp, open, high, low, close, volume, trade_count, vwap
		FROM bars
		WHERE market = ? AND symbol = ? AND timestamp BETWEEN ? AND ?
		ORDER BY timestamp`,
		market, symbol, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []domain.Bar
	for rows.Next() {
		var b domain.Bar
		var ts int64
		if err := rows.Scan(&b.Symbol, &ts, &b.Open, &b.High, &b.Low, &b.Close,
			&b.Volume, &b.TradeCount, &b.VWAP); err != nil {
			return nil, err
		}
		b.Timestamp = time.UnixMilli(ts).UTC()
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// ListSymbols returns all distinct symbols with bars in the given market.
func (s *SQLiteStore) ListSymbols(ctx context.Context, market string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT symbol FROM bars WHERE market = ? ORDER BY symbol`, market)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

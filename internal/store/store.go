// Package store defines the BarStore interface for persisting and retrieving
// historical bar data, with Parquet and SQLite backed implementations.
package store

import (
	"context"
	"time"

	"backcast/internal/domain"
)

// BarStore persists and retrieves OHLCV bar data. Stores are the data-loading
// collaborators of the backtest engine; the engine itself never touches one.
type BarStore interface {
	// WriteBars persists a batch of bars under the given market.
	WriteBars(ctx context.Context, market string, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol and market within
	// [start, end], sorted by timestamp.
	ReadBars(ctx context.Context, symbol, market string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols available in the given market.
	ListSymbols(ctx context.Context, market string) ([]string, error)
}

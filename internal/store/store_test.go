package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"backcast/internal/domain"
)

func testBars() []domain.Bar {
	return []domain.Bar{
		{
			Symbol:     "AAPL",
			Timestamp:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			Open:       185.0,
			High:       186.5,
			Low:        184.0,
			Close:      185.5,
			Volume:     50000000,
			TradeCount: 500000,
			VWAP:       185.25,
		},
		{
			Symbol:     "AAPL",
			Timestamp:  time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
			Open:       185.5,
			High:       187.0,
			Low:        185.0,
			Close:      186.0,
			Volume:     45000000,
			TradeCount: 450000,
			VWAP:       185.75,
		},
	}
}

// roundTrip exercises the BarStore contract against any implementation.
func roundTrip(t *testing.T, s BarStore) {
	t.Helper()
	ctx := context.Background()

	if err := s.WriteBars(ctx, "us", testBars()); err != nil {
		t.Fatalf("WriteBars: %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := s.ReadBars(ctx, "AAPL", "us", start, end)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars, want 2", len(got))
	}
	if got[0].Close != 185.5 {
		t.Errorf("first bar Close = %v, want 185.5", got[0].Close)
	}
	if got[1].Close != 186.0 {
		t.Errorf("second bar Close = %v, want 186.0", got[1].Close)
	}

	// Re-writing the same bars must not duplicate them.
	if err := s.WriteBars(ctx, "us", testBars()[:1]); err != nil {
		t.Fatalf("WriteBars (rewrite): %v", err)
	}
	got, err = s.ReadBars(ctx, "AAPL", "us", start, end)
	if err != nil {
		t.Fatalf("ReadBars after rewrite: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars after rewrite, want 2", len(got))
	}

	// Range filtering excludes bars outside [start, end].
	dayOne := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	got, err = s.ReadBars(ctx, "AAPL", "us", dayOne, dayOne)
	if err != nil {
		t.Fatalf("ReadBars (single day): %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadBars single-day returned %d bars, want 1", len(got))
	}

	// ListSymbols sees the written symbol.
	symbols, err := s.ListSymbols(ctx, "us")
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	if len(symbols) != 1 || symbols[0] != "AAPL" {
		t.Errorf("ListSymbols = %v, want [AAPL]", symbols)
	}

	// Unknown market is empty, not an error.
	symbols, err = s.ListSymbols(ctx, "cn")
	if err != nil {
		t.Fatalf("ListSymbols (cn): %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("ListSymbols(cn) = %v, want empty", symbols)
	}
}

func TestParquetStoreRoundTrip(t *testing.T) {
	roundTrip(t, NewParquetStore(t.TempDir()))
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "bars.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			t.Errorf("Close() returned error: %v", cerr)
		}
	}()

	roundTrip(t, s)
}

func TestParquetStorePath(t *testing.T) {
	ps := NewParquetStore("/data")

	bp := ps.barPath("aapl", "us", 2024)
	wantBarPath := filepath.Join("/data", "us", "daily", "AAPL", "2024.parquet")
	if bp != wantBarPath {
		t.Errorf("barPath mismatch:\n  got  %s\n  want %s", bp, wantBarPath)
	}
	if !strings.Contains(bp, "AAPL") {
		t.Errorf("barPath should upper-case the symbol: %s", bp)
	}
}

func TestParquetStoreMergeAcrossWrites(t *testing.T) {
	ps := NewParquetStore(t.TempDir())
	ctx := context.Background()

	// Two writes into the same symbol+year file must merge, not overwrite.
	bars1 := []domain.Bar{{
		Symbol:    "MSFT",
		Timestamp: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Open:      400.0, High: 405.0, Low: 399.0, Close: 403.0,
		Volume: 30000000, TradeCount: 300000, VWAP: 402.0,
	}}
	if err := ps.WriteBars(ctx, "us", bars1); err != nil {
		t.Fatalf("WriteBars (first): %v", err)
	}

	bars2 := []domain.Bar{{
		Symbol:    "MSFT",
		Timestamp: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		Open:      403.0, High: 410.0, Low: 402.0, Close: 408.0,
		Volume: 35000000, TradeCount: 350000, VWAP: 406.0,
	}}
	if err := ps.WriteBars(ctx, "us", bars2); err != nil {
		t.Fatalf("WriteBars (second): %v", err)
	}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	got, err := ps.ReadBars(ctx, "MSFT", "us", start, end)
	if err != nil {
		t.Fatalf("ReadBars: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReadBars returned %d bars after merge, want 2", len(got))
	}
	if !got[0].Timestamp.Before(got[1].Timestamp) {
		t.Error("merged bars are not sorted by timestamp")
	}
}

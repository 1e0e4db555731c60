package domain

import (
	"testing"
	"time"
)

func TestTypesExist(t *testing.T) {
	// Verify Bar can be instantiated with zero values.
	bar := Bar{}
	if bar.Symbol != "" {
		t.Error("expected empty Symbol for zero-value Bar")
	}
	if !bar.Timestamp.IsZero() {
		t.Error("expected zero Timestamp for zero-value Bar")
	}
	if bar.Open != 0 || bar.High != 0 || bar.Low != 0 || bar.Close != 0 {
		t.Error("expected zero OHLC values for zero-value Bar")
	}
	if bar.Volume != 0 || bar.TradeCount != 0 || bar.VWAP != 0 {
		t.Error("expected zero Volume/TradeCount/VWAP for zero-value Bar")
	}

	// Verify enum constants are defined correctly.
	if SignalBuy != "buy" || SignalSell != "sell" {
		t.Error("Signal kind constants have unexpected values")
	}
	if MarketUS != "us" || MarketCN != "cn" {
		t.Error("Market constants have unexpected values")
	}

	// Verify structs can be constructed with real values.
	signal := Signal{
		Kind:   SignalBuy,
		Symbol: "AAPL",
		Size:   100,
		Price:  185.5,
		Fields: map[string]float64{"confidence": 0.85},
	}
	if signal.Kind != SignalBuy {
		t.Errorf("signal.Kind = %q, want %q", signal.Kind, SignalBuy)
	}

	pos := Position{
		Symbol:     "AAPL",
		Qty:        100,
		Side:       PositionSideLong,
		EntryPrice: 185.5,
		OpenedAt:   time.Now(),
	}
	if pos.Side != PositionSideLong {
		t.Errorf("pos.Side = %q, want %q", pos.Side, PositionSideLong)
	}
}

func TestSignalField(t *testing.T) {
	sig := Signal{
		Kind:   SignalSell,
		Fields: map[string]float64{"stop": 98.5},
	}

	if got := sig.Field("stop", 0); got != 98.5 {
		t.Errorf("Field(stop) = %v, want 98.5", got)
	}
	if got := sig.Field("limit", 101); got != 101 {
		t.Errorf("Field(limit) fallback = %v, want 101", got)
	}

	// Nil Fields map behaves as all-absent.
	empty := Signal{Kind: SignalHold}
	if got := empty.Field("stop", 50); got != 50 {
		t.Errorf("Field on nil map = %v, want fallback 50", got)
	}
}

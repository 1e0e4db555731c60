// Package domain defines the core data types shared across the backcast
// platform: market-data bars, trading signals, and positions.
package domain

import "time"

// Market identifies which market a symbol trades in.
type Market = string

// Market constants.
const (
	MarketUS Market = "us"
	MarketCN Market = "cn"
)

// Bar is one OHLCV observation for a symbol at a timestamp. Bars are
// immutable once loaded; everything downstream treats them as values.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// SignalKind is the required action field of a Signal.
type SignalKind string

// Signal kinds.
const (
	SignalBuy  SignalKind = "buy"
	SignalSell SignalKind = "sell"
	SignalHold SignalKind = "hold"
)

// Signal is a strategy-produced instruction record for a single timestep.
// Kind, Symbol, Size, and Price form the minimal schema; strategies may
// attach arbitrary numeric extension values via Fields (e.g. "stop",
// "limit", "confidence").
type Signal struct {
	Kind   SignalKind
	Symbol string
	Size   float64
	Price  float64
	Fields map[string]float64
}

// Field returns the named extension value, or fallback when the field is
// absent.
func (s Signal) Field(name string, fallback float64) float64 {
	if v, ok := s.Fields[name]; ok {
		return v
	}
	return fallback
}

// PositionSide indicates the direction of an open position.
type PositionSide string

// Position sides.
const (
	PositionSideLong  PositionSide = "long"
	PositionSideShort PositionSide = "short"
)

// Position is an open holding tracked by a strategy. The backtest engine
// never inspects positions; they are strategy-owned state.
type Position struct {
	Symbol     string
	Qty        float64
	Side       PositionSide
	EntryPrice float64
	OpenedAt   time.Time
}

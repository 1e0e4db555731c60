// Package builtins provides built-in strategy implementations that ship with
// the backcast platform. They are ordinary consumers of the backtest engine;
// nothing in the engine depends on them.
package builtins

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thrasher-corp/gct-ta/indicators"

	"backcast/internal/backtest"
	"backcast/internal/domain"
	"backcast/internal/report"
)

// Compile-time interface check.
var _ backtest.Strategy = (*SMACross)(nil)

// SMACross implements a simple moving average crossover strategy. It opens a
// long position when the short-period SMA crosses above the long-period SMA
// and closes it when the short SMA crosses back below. An optional stop-loss
// closes the position whenever the price falls the configured fraction below
// the entry.
type SMACross struct {
	shortPeriod int
	longPeriod  int
	stopLossPct float64 // 0 disables the stop

	initialCapital float64
	cash           float64
	position       *domain.Position
	lastClose      float64
	lastTime       time.Time
	equity         []float64
	tradePnL       []float64
	log            *slog.Logger
}

// NewSMACross creates an SMACross strategy with the given short and long
// moving average periods, stop-loss fraction, and starting capital.
func NewSMACross(short, long int, stopLossPct, initialCapital float64) (*SMACross, error) {
	if short <= 0 {
		return nil, fmt.Errorf("sma-cross: short period must be positive, got %d", short)
	}
	if long <= short {
		return nil, fmt.Errorf("sma-cross: long period %d must exceed short period %d", long, short)
	}
	return &SMACross{
		shortPeriod:    short,
		longPeriod:     long,
		stopLossPct:    stopLossPct,
		initialCapital: initialCapital,
		cash:           initialCapital,
		log:            slog.Default().With("strategy", "sma-cross"),
	}, nil
}

// Name returns "sma-cross".
func (s *SMACross) Name() string {
	return "sma-cross"
}

// GenerateSignals computes the two SMAs over the visible closes and records
// a buy or sell signal at the current timestep when they cross.
func (s *SMACross) GenerateSignals(_ context.Context, view backtest.View, signals *backtest.SignalBook) error {
	bar := view.Last()
	s.lastClose = bar.Close
	s.lastTime = bar.Timestamp

	// Both averages need a current and a previous point to detect a cross.
	if view.Len() <= s.longPeriod {
		return nil
	}

	closes := view.Closes()
	shortMA := indicators.SMA(closes, s.shortPeriod)
	longMA := indicators.SMA(closes, s.longPeriod)
	if len(shortMA) < 2 || len(longMA) < 2 {
		return nil
	}

	prevDiff := shortMA[len(shortMA)-2] - longMA[len(longMA)-2]
	currDiff := shortMA[len(shortMA)-1] - longMA[len(longMA)-1]

	switch {
	case prevDiff <= 0 && currDiff > 0 && s.position == nil:
		signals.Put(view.Step(), domain.Signal{
			Kind:   domain.SignalBuy,
			Symbol: bar.Symbol,
			Size:   s.cash / bar.Close,
			Price:  bar.Close,
			Fields: map[string]float64{"spread": currDiff},
		})
	case prevDiff >= 0 && currDiff < 0 && s.position != nil:
		signals.Put(view.Step(), domain.Signal{
			Kind:   domain.SignalSell,
			Symbol: bar.Symbol,
			Size:   s.position.Qty,
			Price:  bar.Close,
			Fields: map[string]float64{"spread": currDiff},
		})
	}
	return nil
}

// ExecuteTrade opens or closes the single long position this strategy holds.
func (s *SMACross) ExecuteTrade(_ context.Context, sig domain.Signal) error {
	switch sig.Kind {
	case domain.SignalBuy:
		if s.position != nil || sig.Price <= 0 || sig.Size <= 0 {
			return nil
		}
		size := sig.Size
		if cost := size * sig.Price; cost > s.cash {
			size = s.cash / sig.Price
		}
		s.cash -= size * sig.Price
		s.position = &domain.Position{
			Symbol:     sig.Symbol,
			Qty:        size,
			Side:       domain.PositionSideLong,
			EntryPrice: sig.Price,
			OpenedAt:   s.lastTime,
		}
		s.log.Debug("opened position", "symbol", sig.Symbol, "qty", size, "price", sig.Price)

	case domain.SignalSell:
		s.closePosition(sig.Price)
	}
	return nil
}

// ManageRisk enforces the stop-loss against the latest close and records the
// current equity point. It runs every timestep, trade or no trade.
func (s *SMACross) ManageRisk(_ context.Context) error {
	if s.position != nil && s.stopLossPct > 0 {
		stop := s.position.EntryPrice * (1 - s.stopLossPct)
		if s.lastClose <= stop {
			s.log.Debug("stop-loss hit", "entry", s.position.EntryPrice, "close", s.lastClose)
			s.closePosition(s.lastClose)
		}
	}
	s.equity = append(s.equity, s.equityValue())
	return nil
}

// EvaluatePerformance summarizes the run from the recorded equity curve and
// closed-trade P&Ls. An open position is marked to the last close, so its
// unrealized P&L is reflected in the final equity.
func (s *SMACross) EvaluatePerformance(_ context.Context) (backtest.Report, error) {
	return report.Compute(s.Name(), s.initialCapital, s.equity, s.tradePnL), nil
}

func (s *SMACross) closePosition(price float64) {
	if s.position == nil {
		return
	}
	proceeds := s.position.Qty * price
	s.tradePnL = append(s.tradePnL, proceeds-s.position.Qty*s.position.EntryPrice)
	s.cash += proceeds
	s.position = nil
}

func (s *SMACross) equityValue() float64 {
	eq := s.cash
	if s.position != nil {
		eq += s.position.Qty * s.lastClose
	}
	return eq
}

package builtins

import (
	"context"

	"backcast/internal/backtest"
	"backcast/internal/domain"
	"backcast/internal/report"
)

// Compile-time interface check.
var _ backtest.Strategy = (*BuyHold)(nil)

// BuyHold buys with all available capital on the first bar and never sells.
// It serves as a baseline to compare other strategies against.
type BuyHold struct {
	initialCapital float64
	cash           float64
	qty            float64
	lastClose      float64
	equity         []float64
}

// NewBuyHold creates a BuyHold strategy with the given starting capital.
func NewBuyHold(initialCapital float64) *BuyHold {
	return &BuyHold{
		initialCapital: initialCapital,
		cash:           initialCapital,
	}
}

// Name returns "buy-hold".
func (s *BuyHold) Name() string {
	return "buy-hold"
}

// GenerateSignals emits a single buy signal at the first timestep.
func (s *BuyHold) GenerateSignals(_ context.Context, view backtest.View, signals *backtest.SignalBook) error {
	bar := view.Last()
	s.lastClose = bar.Close

	if view.Step() == 0 && bar.Close > 0 {
		signals.Put(0, domain.Signal{
			Kind:   domain.SignalBuy,
			Symbol: bar.Symbol,
			Size:   s.cash / bar.Close,
			Price:  bar.Close,
		})
	}
	return nil
}

// ExecuteTrade fills the initial buy.
func (s *BuyHold) ExecuteTrade(_ context.Context, sig domain.Signal) error {
	if sig.Kind != domain.SignalBuy || s.qty > 0 || sig.Price <= 0 {
		return nil
	}
	s.qty = sig.Size
	s.cash -= sig.Size * sig.Price
	return nil
}

// ManageRisk only records the equity point; the position is never closed.
func (s *BuyHold) ManageRisk(_ context.Context) error {
	s.equity = append(s.equity, s.cash+s.qty*s.lastClose)
	return nil
}

// EvaluatePerformance summarizes the run. The held position is marked to the
// last close; no trades ever close, so trade statistics stay zero.
func (s *BuyHold) EvaluatePerformance(_ context.Context) (backtest.Report, error) {
	return report.Compute(s.Name(), s.initialCapital, s.equity, nil), nil
}

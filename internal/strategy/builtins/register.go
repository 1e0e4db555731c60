package builtins

import (
	"backcast/internal/backtest"
	"backcast/internal/strategy"
)

// Register adds all built-in strategies to the registry.
func Register(r *strategy.Registry) {
	r.Register("sma-cross", func(p strategy.Params) (backtest.Strategy, error) {
		return NewSMACross(
			int(p.Option("short", 10)),
			int(p.Option("long", 30)),
			p.Option("stop_loss_pct", 0),
			p.InitialCapital,
		)
	})

	r.Register("buy-hold", func(p strategy.Params) (backtest.Strategy, error) {
		return NewBuyHold(p.InitialCapital), nil
	})
}

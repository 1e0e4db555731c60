package backtest

import (
	"context"

	"backcast/internal/domain"
)

// Strategy is the contract a trading strategy must satisfy to run under the
// Engine. All four capabilities are mandatory; the compiler rejects partial
// implementations. The engine invokes them in a fixed order per timestep:
// GenerateSignals, then ExecuteTrade (only when a signal exists for the
// step), then ManageRisk. EvaluatePerformance runs exactly once after the
// last timestep.
//
// Any error returned from a callback aborts the run immediately.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// GenerateSignals inspects the causal view (all bars up to and
	// including the current timestep) and writes zero or one signal record
	// into the book at view.Step(). It must not retain or mutate the view.
	GenerateSignals(ctx context.Context, view View, signals *SignalBook) error

	// ExecuteTrade acts on the signal recorded for the current timestep,
	// opening, closing, or adjusting the strategy's own positions. It is
	// skipped entirely on steps without a signal.
	ExecuteTrade(ctx context.Context, sig domain.Signal) error

	// ManageRisk runs unconditionally every timestep, whether or not a trade
	// executed, and may adjust or close positions (stop-loss, sizing).
	ManageRisk(ctx context.Context) error

	// EvaluatePerformance summarizes the completed run. It is called exactly
	// once, after the final ManageRisk, and never after an aborted run.
	EvaluatePerformance(ctx context.Context) (Report, error)
}

// Report is the terminal performance summary a strategy produces. Its
// concrete shape is strategy-defined; the engine only requires that it
// render as text.
type Report interface {
	String() string
}

// Presenter renders a completed run's performance report.
type Presenter interface {
	Render(r Report) error
}

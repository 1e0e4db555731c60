package backtest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Engine errors.
var (
	// ErrNilSeries is returned by New when no series is supplied.
	ErrNilSeries = errors.New("backtest: nil series")

	// ErrNilStrategy is returned by New when no strategy is supplied.
	ErrNilStrategy = errors.New("backtest: nil strategy")

	// ErrAlreadyRun is returned by Run on an engine that has already
	// started a run. Engines are single-use.
	ErrAlreadyRun = errors.New("backtest: engine already ran")

	// ErrRunNotCompleted is returned by Report and Result before a run has
	// completed successfully.
	ErrRunNotCompleted = errors.New("backtest: run not completed")
)

// Engine replays a Series bar-by-bar through a Strategy, in a single pass
// over strictly increasing timesteps. Each instance owns its signal book and
// result exclusively; there is no shared state between engines and no
// locking. A run either completes all timesteps or aborts entirely on the
// first callback failure.
type Engine struct {
	series   *Series
	strategy Strategy
	capital  float64

	signals *SignalBook
	result  Report
	started bool
	done    bool
	log     *slog.Logger
}

// New creates an Engine over the given series with the given starting
// capital. The series and capital are stored verbatim and never mutated.
// An empty series is allowed and yields a no-op run; a nil series or
// strategy is a contract violation.
func New(series *Series, initialCapital float64, strat Strategy) (*Engine, error) {
	if series == nil {
		return nil, ErrNilSeries
	}
	if strat == nil {
		return nil, ErrNilStrategy
	}
	return &Engine{
		series:   series,
		strategy: strat,
		capital:  initialCapital,
		signals:  NewSignalBook(),
		log:      slog.Default().With("component", "backtest", "strategy", strat.Name()),
	}, nil
}

// Run executes the backtest. For each timestep i in 0..Len()-1 it hands the
// strategy the causal prefix [0..i], re-reads the signal book at i, executes
// the trade only when a signal exists, and then runs risk management. After
// the final timestep it collects the performance report.
//
// The first callback error aborts the run mid-sequence: no later callbacks
// fire and no performance report is produced. An empty series skips the
// loop but still evaluates performance once, on the strategy's empty state.
func (e *Engine) Run(ctx context.Context) error {
	if e.started {
		return ErrAlreadyRun
	}
	e.started = true

	n := e.series.Len()
	e.log.Debug("starting run", "bars", n, "initialCapital", e.capital)

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		view := e.series.Prefix(i)

		if err := e.strategy.GenerateSignals(ctx, view, e.signals); err != nil {
			return fmt.Errorf("step %d: generate signals: %w", i, err)
		}

		if sig, ok := e.signals.Get(i); ok {
			if err := e.strategy.ExecuteTrade(ctx, sig); err != nil {
				return fmt.Errorf("step %d: execute trade: %w", i, err)
			}
			e.log.Debug("trade executed", "step", i, "kind", sig.Kind, "size", sig.Size, "price", sig.Price)
		}

		if err := e.strategy.ManageRisk(ctx); err != nil {
			return fmt.Errorf("step %d: manage risk: %w", i, err)
		}
	}

	result, err := e.strategy.EvaluatePerformance(ctx)
	if err != nil {
		return fmt.Errorf("evaluate performance: %w", err)
	}

	e.result = result
	e.done = true
	e.log.Debug("run complete", "bars", n, "signals", e.signals.Len())
	return nil
}

// Report renders the stored performance result through the given presenter.
// Calling it before Run has completed is a usage error.
func (e *Engine) Report(p Presenter) error {
	if !e.done {
		return ErrRunNotCompleted
	}
	return p.Render(e.result)
}

// Result returns the stored performance report of a completed run.
func (e *Engine) Result() (Report, error) {
	if !e.done {
		return nil, ErrRunNotCompleted
	}
	return e.result, nil
}

// Signals returns the signal book, retained after the run for inspection.
func (e *Engine) Signals() *SignalBook {
	return e.signals
}

// InitialCapital returns the starting capital supplied at construction.
func (e *Engine) InitialCapital() float64 {
	return e.capital
}

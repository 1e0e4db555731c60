package report

import (
	"fmt"
	"io"
	"log/slog"

	"backcast/internal/backtest"
)

// Compile-time interface checks.
var _ backtest.Presenter = (*ConsolePresenter)(nil)
var _ backtest.Presenter = (*LogPresenter)(nil)

// ConsolePresenter renders a performance report as text to a writer.
type ConsolePresenter struct {
	w io.Writer
}

// NewConsolePresenter creates a ConsolePresenter writing to w.
func NewConsolePresenter(w io.Writer) *ConsolePresenter {
	return &ConsolePresenter{w: w}
}

// Render writes the report text framed by a header line.
func (p *ConsolePresenter) Render(r backtest.Report) error {
	_, err := fmt.Fprintf(p.w, "--- backtest report ---\n%s\n", r.String())
	return err
}

// LogPresenter emits a performance report through the structured logger.
type LogPresenter struct {
	log *slog.Logger
}

// NewLogPresenter creates a LogPresenter on the given logger. A nil logger
// falls back to slog.Default().
func NewLogPresenter(log *slog.Logger) *LogPresenter {
	if log == nil {
		log = slog.Default()
	}
	return &LogPresenter{log: log}
}

// Render logs the report. A *Result is logged field by field; any other
// report shape is logged as its text rendering.
func (p *LogPresenter) Render(r backtest.Report) error {
	if res, ok := r.(*Result); ok {
		p.log.Info("backtest complete",
			"strategy", res.Strategy,
			"finalEquity", res.FinalEquity,
			"totalReturn", res.TotalReturn,
			"maxDrawdown", res.MaxDrawdown,
			"sharpe", res.SharpeRatio,
			"trades", res.TotalTrades,
		)
		return nil
	}
	p.log.Info("backtest complete", "report", r.String())
	return nil
}

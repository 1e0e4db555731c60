// Package report provides the standard performance result produced by the
// built-in strategies, the metric computations behind it, and presenters
// that render a completed run.
package report

import (
	"fmt"
	"strings"

	"backcast/internal/backtest"
)

// Compile-time interface check.
var _ backtest.Report = (*Result)(nil)

// Result holds the summary metrics of a backtest run.
type Result struct {
	Strategy       string
	InitialCapital float64
	FinalEquity    float64
	TotalReturn    float64 // fraction, e.g. 0.12 for +12%
	MaxDrawdown    float64 // fraction, peak to trough
	SharpeRatio    float64
	TotalTrades    int
	WinRate        float64 // fraction of closed trades with non-negative P&L
	ProfitFactor   float64
}

// String renders the result as a multi-line text block.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "strategy:        %s\n", r.Strategy)
	fmt.Fprintf(&b, "initial capital: %s\n", FormatMoney(r.InitialCapital))
	fmt.Fprintf(&b, "final equity:    %s\n", FormatMoney(r.FinalEquity))
	fmt.Fprintf(&b, "total return:    %s\n", FormatPct(r.TotalReturn))
	fmt.Fprintf(&b, "max drawdown:    %s\n", FormatPct(-r.MaxDrawdown))
	fmt.Fprintf(&b, "sharpe ratio:    %.2f\n", r.SharpeRatio)
	fmt.Fprintf(&b, "trades:          %d\n", r.TotalTrades)
	fmt.Fprintf(&b, "win rate:        %s\n", FormatPct(r.WinRate))
	fmt.Fprintf(&b, "profit factor:   %s", FormatRatio(r.ProfitFactor))
	return b.String()
}

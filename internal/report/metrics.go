package report

import (
	"math"
)

// tradingDaysPerYear annualizes per-bar returns computed from daily bars.
const tradingDaysPerYear = 252

// Compute rolls the per-step equity curve and closed-trade P&Ls up into a
// Result. The equity slice holds one point per completed timestep; tradePnL
// holds one net P&L per closed trade.
func Compute(strategy string, initialCapital float64, equity []float64, tradePnL []float64) *Result {
	res := &Result{
		Strategy:       strategy,
		InitialCapital: initialCapital,
		FinalEquity:    initialCapital,
	}

	if len(equity) > 0 {
		res.FinalEquity = equity[len(equity)-1]
	}
	if initialCapital > 0 {
		res.TotalReturn = (res.FinalEquity - initialCapital) / initialCapital
	}
	res.MaxDrawdown = MaxDrawdown(equity)
	res.SharpeRatio = SharpeRatio(stepReturns(equity), tradingDaysPerYear)

	var wins int
	var winsAmt, lossAmt float64
	for _, pnl := range tradePnL {
		if pnl >= 0 {
			wins++
			winsAmt += pnl
		} else {
			lossAmt += -pnl
		}
	}
	res.TotalTrades = len(tradePnL)
	if res.TotalTrades > 0 {
		res.WinRate = float64(wins) / float64(res.TotalTrades)
	}
	if lossAmt > 0 {
		res.ProfitFactor = winsAmt / lossAmt
	} else if winsAmt > 0 {
		res.ProfitFactor = math.Inf(1)
	}

	return res
}

// MaxDrawdown returns the largest peak-to-trough decline of the equity
// curve as a positive fraction of the peak. An empty or non-declining curve
// yields 0.
func MaxDrawdown(equity []float64) float64 {
	var peak, maxDD float64
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if peak > 0 {
			dd := (peak - e) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// SharpeRatio computes the annualized Sharpe ratio of the given per-step
// returns, assuming a zero risk-free rate. Fewer than two returns, or zero
// volatility, yield 0.
func SharpeRatio(returns []float64, periodsPerYear float64) float64 {
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var varSum float64
	for _, r := range returns {
		d := r - mean
		varSum += d * d
	}
	std := math.Sqrt(varSum / float64(len(returns)-1))
	if std == 0 {
		return 0
	}

	return mean / std * math.Sqrt(periodsPerYear)
}

// stepReturns converts an equity curve into per-step fractional returns.
func stepReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (equity[i]-equity[i-1])/equity[i-1])
	}
	return returns
}

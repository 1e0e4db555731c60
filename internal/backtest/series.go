// Package backtest implements the bar-replay backtesting engine: an ordered
// market-data series, a per-timestep signal book, the Strategy contract, and
// the Engine control loop that drives them with strict temporal causality.
package backtest

import (
	"backcast/internal/domain"
)

// Series is an ordered, time-indexed sequence of bars, indexed 0..Len()-1.
// The caller owns the underlying data; a Series only borrows it and never
// mutates it.
type Series struct {
	bars []domain.Bar
}

// NewSeries wraps the given bars. Bars must already be sorted by timestamp;
// the series does not reorder them.
func NewSeries(bars []domain.Bar) *Series {
	return &Series{bars: bars}
}

// Len returns the number of bars in the series.
func (s *Series) Len() int {
	return len(s.bars)
}

// At returns the bar at index i. It panics when i is out of range, same as
// a slice access.
func (s *Series) At(i int) domain.Bar {
	return s.bars[i]
}

// Prefix returns the causal view containing exactly the bars [0..i]. This is
// the only window the engine ever hands to a strategy, so a strategy that
// reads data through its View cannot observe the future.
func (s *Series) Prefix(i int) View {
	return View{bars: s.bars[:i+1]}
}

// View is a read-only prefix of a Series: all bars up to and including the
// current timestep. Access goes through methods only, so the slice cannot
// be extended or mutated by a strategy.
type View struct {
	bars []domain.Bar
}

// Len returns the number of bars visible in the view.
func (v View) Len() int {
	return len(v.bars)
}

// Step returns the index of the current timestep, i.e. the index of the
// latest visible bar. It is -1 for an empty view.
func (v View) Step() int {
	return len(v.bars) - 1
}

// At returns the bar at index i within the view.
func (v View) At(i int) domain.Bar {
	return v.bars[i]
}

// Last returns the bar at the current timestep.
func (v View) Last() domain.Bar {
	return v.bars[len(v.bars)-1]
}

// Closes returns a copy of the close prices of all visible bars, oldest
// first. Handy as input to indicator functions.
func (v View) Closes() []float64 {
	closes := make([]float64, len(v.bars))
	for i := range v.bars {
		closes[i] = v.bars[i].Close
	}
	return closes
}

package backtest

import (
	"backcast/internal/domain"
)

// SignalBook maps timestep indices to signal records. It is created empty at
// the start of a run and only ever grows. At most one signal is held per
// timestep; a second Put for the same step replaces the first. The absence
// of an entry for a step is a normal state, not an error.
//
// By convention a strategy writes only at the current timestep. Writes at
// other indices are accepted but the engine never reads an index before its
// step arrives, so a retroactive write to a past step is simply unobserved.
type SignalBook struct {
	records map[int]domain.Signal
}

// NewSignalBook creates an empty SignalBook.
func NewSignalBook() *SignalBook {
	return &SignalBook{records: make(map[int]domain.Signal)}
}

// Put records the signal for the given timestep.
func (b *SignalBook) Put(step int, sig domain.Signal) {
	b.records[step] = sig
}

// Get returns the signal for the given timestep. The second return value
// indicates whether an entry exists.
func (b *SignalBook) Get(step int) (domain.Signal, bool) {
	sig, ok := b.records[step]
	return sig, ok
}

// Len returns the number of timesteps that have a signal recorded.
func (b *SignalBook) Len() int {
	return len(b.records)
}

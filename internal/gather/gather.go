// Package gather defines the contract for data gathering jobs that fill the
// bar stores the backtester reads from.
package gather

import (
	"context"
	"time"
)

// Gatherer is a batch data-gathering job.
type Gatherer interface {
	// Name returns the gatherer identifier.
	Name() string
	// Run fetches data and writes it to the target store. It returns when
	// the job completes, fails, or the context is cancelled.
	Run(ctx context.Context) error
}

// DateRange is the inclusive time window a gatherer fetches.
type DateRange struct {
	Start time.Time
	End   time.Time
}

package us

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"backcast/internal/domain"
	"backcast/internal/gather"
	"backcast/internal/store"
	"backcast/internal/util"
)

var _ gather.Gatherer = (*DailyBarGatherer)(nil)

// ---------------------------------------------------------------------------
// DailyBarGatherer — daily OHLCV bars from the Alpaca market-data API.
// ---------------------------------------------------------------------------

// DailyBarGatherer fetches daily bar history for a configured list of US
// equity symbols and writes it to a bar store. Symbols are fetched in
// batches through GetMultiBars, with a worker pool and a rate limiter in
// front of the API.
type DailyBarGatherer struct {
	client     *marketdata.Client
	store      store.BarStore
	symbols    []string
	batchSize  int
	maxWorkers int
	limiter    *util.RateLimiter
	dateRange  gather.DateRange
	log        *slog.Logger
}

// NewDailyBarGatherer creates a DailyBarGatherer configured with the given
// Alpaca credentials, target store, symbol list, and batch parameters.
func NewDailyBarGatherer(apiKey, apiSecret, dataURL string, s store.BarStore,
	symbols []string, batchSize, maxWorkers, rateLimitPerMin int,
	dateRange gather.DateRange) *DailyBarGatherer {

	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	if batchSize <= 0 {
		batchSize = 50
	}
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	if rateLimitPerMin <= 0 {
		rateLimitPerMin = 200
	}

	return &DailyBarGatherer{
		client:     marketdata.NewClient(opts),
		store:      s,
		symbols:    symbols,
		batchSize:  batchSize,
		maxWorkers: maxWorkers,
		limiter:    util.NewRateLimiter(rateLimitPerMin),
		dateRange:  dateRange,
		log:        slog.Default().With("gatherer", "us-daily"),
	}
}

// Name returns the gatherer identifier.
func (g *DailyBarGatherer) Name() string { return "us-daily" }

// Run fetches daily bars for every configured symbol and writes them to the
// store. Each batch is retried with backoff before the run gives up on it;
// a run only fails when the context is cancelled or a batch exhausts its
// retries.
func (g *DailyBarGatherer) Run(ctx context.Context) error {
	if len(g.symbols) == 0 {
		return fmt.Errorf("no symbols configured")
	}

	var batches [][]string
	for i := 0; i < len(g.symbols); i += g.batchSize {
		end := min(i+g.batchSize, len(g.symbols))
		batches = append(batches, g.symbols[i:end])
	}

	g.log.Info("starting us-daily",
		"symbols", len(g.symbols),
		"batches", len(batches),
		"start", g.dateRange.Start.Format("2006-01-02"),
		"end", g.dateRange.End.Format("2006-01-02"),
	)

	batchCh := make(chan int, len(batches))
	for i := range batches {
		batchCh <- i
	}
	close(batchCh)

	var (
		wg        sync.WaitGroup
		totalBars atomic.Int64
		errMu     sync.Mutex
		firstErr  error
		runStart  = time.Now()
	)
	recordErr := func(err error) {
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	workers := min(g.maxWorkers, len(batches))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batchIdx := range batchCh {
				if ctx.Err() != nil {
					return
				}

				batch := batches[batchIdx]

				var bars []domain.Bar
				err := util.Retry(ctx, 3, time.Second, func() error {
					if err := g.limiter.Wait(ctx); err != nil {
						return err
					}
					var fetchErr error
					bars, fetchErr = g.fetchMultiBars(ctx, batch)
					return fetchErr
				})
				if err != nil {
					g.log.Error("batch fetch failed",
						"batch", fmt.Sprintf("%d/%d", batchIdx+1, len(batches)),
						"err", err,
					)
					recordErr(err)
					return
				}

				if len(bars) > 0 {
					if err := g.store.WriteBars(ctx, domain.MarketUS, bars); err != nil {
						g.log.Error("writing bars failed", "err", err)
						recordErr(err)
						return
					}
				}

				totalBars.Add(int64(len(bars)))
				g.log.Info("batch done",
					"batch", fmt.Sprintf("%d/%d", batchIdx+1, len(batches)),
					"bars", len(bars),
					"elapsed", time.Since(runStart).Round(time.Second),
				)
			}
		}()
	}

	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if firstErr != nil {
		return firstErr
	}

	g.log.Info("complete",
		"bars", totalBars.Load(),
		"elapsed", time.Since(runStart).Round(time.Second),
	)
	return nil
}

// fetchMultiBars fetches daily bars for multiple symbols in a single API call.
func (g *DailyBarGatherer) fetchMultiBars(ctx context.Context, symbols []string) ([]domain.Bar, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	multiBars, err := g.client.GetMultiBars(symbols, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     g.dateRange.Start,
		End:       g.dateRange.End,
		Feed:      "sip",
	})
	if err != nil {
		return nil, fmt.Errorf("GetMultiBars: %w", err)
	}

	var bars []domain.Bar
	for symbol, alpacaBars := range multiBars {
		for _, ab := range alpacaBars {
			bars = append(bars, domain.Bar{
				Symbol:     strings.ToUpper(symbol),
				Timestamp:  ab.Timestamp,
				Open:       ab.Open,
				High:       ab.High,
				Low:        ab.Low,
				Close:      ab.Close,
				Volume:     int64(ab.Volume),
				TradeCount: int64(ab.TradeCount),
				VWAP:       ab.VWAP,
			})
		}
	}
	return bars, nil
}

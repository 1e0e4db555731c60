package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backcast/internal/config"
	"backcast/internal/gather"
	"backcast/internal/gather/us"
	"backcast/internal/store"
)

func main() {
	startDate := flag.String("start", "", "override gather start date (YYYY-MM-DD)")
	flag.Parse()

	cfgPath := "config/backcast.yaml"
	if p := os.Getenv("BACKCAST_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dual logger: stdout + /tmp log file.
	logFileName := fmt.Sprintf("/tmp/backcast-data-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.Create(logFileName)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	w := io.MultiWriter(os.Stdout, logFile)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	barStore, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer closeStore()

	dateRange, err := resolveDateRange(cfg.Gather, *startDate)
	if err != nil {
		log.Fatalf("invalid gather dates: %v", err)
	}

	gatherer := us.NewDailyBarGatherer(
		cfg.Alpaca.APIKey,
		cfg.Alpaca.APISecret,
		cfg.Alpaca.DataURL,
		barStore,
		cfg.Gather.Symbols,
		cfg.Gather.BatchSize,
		cfg.Gather.MaxWorkers,
		cfg.Gather.RateLimitPerMin,
		dateRange,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	slog.Info("starting backcast-data", "logFile", logFileName, "symbols", len(cfg.Gather.Symbols))
	if err := gatherer.Run(ctx); err != nil {
		log.Fatalf("gather error: %v", err)
	}
}

func openStore(cfg *config.Config) (store.BarStore, func() error, error) {
	switch cfg.Storage.Backend {
	case "", "parquet":
		return store.NewParquetStore(cfg.Storage.DataDir), func() error { return nil }, nil
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func resolveDateRange(gc config.GatherConfig, startOverride string) (gather.DateRange, error) {
	startStr := gc.StartDate
	if startOverride != "" {
		startStr = startOverride
	}
	if startStr == "" {
		return gather.DateRange{}, fmt.Errorf("no start date configured")
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return gather.DateRange{}, fmt.Errorf("parsing start date %q: %w", startStr, err)
	}

	end := time.Now()
	if gc.EndDate != "" {
		end, err = time.Parse("2006-01-02", gc.EndDate)
		if err != nil {
			return gather.DateRange{}, fmt.Errorf("parsing end date %q: %w", gc.EndDate, err)
		}
	}

	return gather.DateRange{Start: start, End: end}, nil
}

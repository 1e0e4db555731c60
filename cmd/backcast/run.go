package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"backcast/internal/backtest"
	"backcast/internal/config"
	"backcast/internal/domain"
	"backcast/internal/report"
	"backcast/internal/store"
	"backcast/internal/strategy"
	"backcast/internal/strategy/builtins"
)

var runFlags struct {
	strategy string
	symbol   string
	market   string
	start    string
	end      string
	capital  float64
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest over stored bar data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyRunFlags(cmd, cfg)

		bt := cfg.Backtest
		if bt.Strategy == "" {
			return fmt.Errorf("no strategy configured (set backtest.strategy or --strategy)")
		}
		if bt.Symbol == "" {
			return fmt.Errorf("no symbol configured (set backtest.symbol or --symbol)")
		}
		if bt.Market == "" {
			bt.Market = domain.MarketUS
		}

		start, end, err := parseRange(bt.Start, bt.End)
		if err != nil {
			return err
		}

		s, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx := cmd.Context()
		bars, err := s.ReadBars(ctx, bt.Symbol, bt.Market, start, end)
		if err != nil {
			return fmt.Errorf("reading bars for %s: %w", bt.Symbol, err)
		}

		registry := strategy.NewRegistry()
		builtins.Register(registry)

		strat, err := registry.New(bt.Strategy, strategy.Params{
			InitialCapital: bt.InitialCapital,
			Options:        bt.Options,
		})
		if err != nil {
			return err
		}

		engine, err := backtest.New(backtest.NewSeries(bars), bt.InitialCapital, strat)
		if err != nil {
			return err
		}
		if err := engine.Run(ctx); err != nil {
			return fmt.Errorf("backtest failed: %w", err)
		}

		return engine.Report(report.NewConsolePresenter(os.Stdout))
	},
}

func init() {
	runCmd.Flags().StringVar(&runFlags.strategy, "strategy", "", "strategy name")
	runCmd.Flags().StringVar(&runFlags.symbol, "symbol", "", "symbol to backtest")
	runCmd.Flags().StringVar(&runFlags.market, "market", "", "market of the symbol")
	runCmd.Flags().StringVar(&runFlags.start, "start", "", "start date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runFlags.end, "end", "", "end date (YYYY-MM-DD)")
	runCmd.Flags().Float64Var(&runFlags.capital, "capital", 0, "initial capital")
	rootCmd.AddCommand(runCmd)
}

// applyRunFlags overlays explicitly set command-line flags on the config.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("strategy") {
		cfg.Backtest.Strategy = runFlags.strategy
	}
	if cmd.Flags().Changed("symbol") {
		cfg.Backtest.Symbol = runFlags.symbol
	}
	if cmd.Flags().Changed("market") {
		cfg.Backtest.Market = runFlags.market
	}
	if cmd.Flags().Changed("start") {
		cfg.Backtest.Start = runFlags.start
	}
	if cmd.Flags().Changed("end") {
		cfg.Backtest.End = runFlags.end
	}
	if cmd.Flags().Changed("capital") {
		cfg.Backtest.InitialCapital = runFlags.capital
	}
}

// parseRange parses the configured date window. An empty start means the
// beginning of available data; an empty end means today.
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start := time.Time{}
	if startStr != "" {
		var err error
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing start date %q: %w", startStr, err)
		}
	}

	end := time.Now()
	if endStr != "" {
		var err error
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parsing end date %q: %w", endStr, err)
		}
		// Make the end date inclusive.
		end = end.Add(24*time.Hour - time.Nanosecond)
	}

	return start, end, nil
}

// openStore builds the configured bar-store backend.
func openStore(cfg *config.Config) (store.BarStore, func() error, error) {
	switch cfg.Storage.Backend {
	case "", "parquet":
		return store.NewParquetStore(cfg.Storage.DataDir), func() error { return nil }, nil
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for the backcast platform.
type Config struct {
	Storage  Storage        `yaml:"storage"`
	Alpaca   Alpaca         `yaml:"alpaca"`
	Logging  Logging        `yaml:"logging"`
	Gather   GatherConfig   `yaml:"gather"`
	Backtest BacktestConfig `yaml:"backtest"`
}

// Storage selects a bar-store backend and holds its paths.
type Storage struct {
	Backend    string `yaml:"backend"` // "parquet" or "sqlite"
	DataDir    string `yaml:"data_dir"`
	SQLitePath string `yaml:"sqlite_path"`
}

// Alpaca holds credentials and endpoints for the Alpaca market-data API.
type Alpaca struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
	DataURL   string `yaml:"data_url"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GatherConfig holds parameters for the daily bar gathering job.
type GatherConfig struct {
	Symbols         []string `yaml:"symbols"`
	StartDate       string   `yaml:"start_date"`
	EndDate         string   `yaml:"end_date"` // empty means today
	BatchSize       int      `yaml:"batch_size"`
	MaxWorkers      int      `yaml:"max_workers"`
	RateLimitPerMin int      `yaml:"rate_limit_per_min"`
}

// BacktestConfig describes a backtest run: which strategy over which data.
type BacktestConfig struct {
	Strategy       string             `yaml:"strategy"`
	Symbol         string             `yaml:"symbol"`
	Market         string             `yaml:"market"`
	Start          string             `yaml:"start"`
	End            string             `yaml:"end"`
	InitialCapital float64            `yaml:"initial_capital"`
	Options        map[string]float64 `yaml:"options"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Alpaca.APIKey = v
	}

	if v := os.Getenv("ALPACA_API_SECRET"); v != "" {
		cfg.Alpaca.APISecret = v
	}

	if v := os.Getenv("ALPACA_DATA_URL"); v != "" {
		cfg.Alpaca.DataURL = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	// The official SDK env vars win over everything else when present.
	if v := os.Getenv("APCA_API_KEY_ID"); v != "" {
		cfg.Alpaca.APIKey = v
	}
	if v := os.Getenv("APCA_API_SECRET_KEY"); v != "" {
		cfg.Alpaca.APISecret = v
	}
}

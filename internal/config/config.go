package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Source   SourceConfig   `mapstructure:"source"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Server   ServerConfig   `mapstructure:"server"`
	Tickers  []string       `mapstructure:"tickers"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type SourceConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	TimeoutSec    int    `mapstructure:"timeout_sec"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryDelaySec int    `mapstructure:"retry_delay_sec"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
	CacheDir      string `mapstructure:"cache_dir"`
}

type AnalysisConfig struct {
	GridPoints         int     `mapstructure:"grid_points"`
	RangePct           float64 `mapstructure:"range_pct"`
	TradingDaysPerYear int     `mapstructure:"trading_days_per_year"`
	Workers            int     `mapstructure:"workers"`
}

type ServerConfig struct {
	Port               string `mapstructure:"port"`
	RefreshIntervalSec int    `mapstructure:"refresh_interval_sec"`
	WSEnabled          bool   `mapstructure:"ws_enabled"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("source.base_url", "https://cdn.cboe.com")
	v.SetDefault("source.timeout_sec", 30)
	v.SetDefault("source.retry_count", 3)
	v.SetDefault("source.retry_delay_sec", 2)
	v.SetDefault("source.rate_per_second", 2)
	v.SetDefault("source.cache_dir", "snapshots")
	v.SetDefault("analysis.grid_points", 30)
	v.SetDefault("analysis.range_pct", 0.20)
	v.SetDefault("analysis.trading_days_per_year", 262)
	v.SetDefault("analysis.workers", 4)
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.refresh_interval_sec", 300)
	v.SetDefault("server.ws_enabled", true)
	v.SetDefault("tickers", []string{"SPX"})
	v.SetDefault("logging.enabled", false)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")

	// Environment variable support
	v.SetEnvPrefix("GAMMAFLIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

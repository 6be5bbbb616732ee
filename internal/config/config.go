// Package config loads matchengine configuration from defaults, an
// optional YAML file, and MATCH_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full matchengine configuration tree.
type Config struct {
	Log      Log      `mapstructure:"log"`
	Engine   Engine   `mapstructure:"engine"`
	Remote   Remote   `mapstructure:"remote"`
	Breaker  Breaker  `mapstructure:"breaker"`
	Travel   Travel   `mapstructure:"travel"`
	Scoring  Scoring  `mapstructure:"scoring"`
	Database Database `mapstructure:"database"`
}

// Log selects the logger encoding and level.
type Log struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Engine tunes the orchestrator.
type Engine struct {
	MaxConcurrency  int           `mapstructure:"max_concurrency"`
	StrategyTimeout time.Duration `mapstructure:"strategy_timeout"`
}

// Remote points at the remote scoring collaborator. An empty BaseURL
// leaves the remote strategy unregistered.
type Remote struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Breaker tunes the circuit breaker toward the remote scoring
// collaborator.
type Breaker struct {
	Threshold int           `mapstructure:"threshold"`
	Window    time.Duration `mapstructure:"window"`
}

// Travel points at the geo collaborator and tunes the travel cache. An
// empty BaseURL sends every lookup down the degraded estimate path.
type Travel struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	SuccessTTL  time.Duration `mapstructure:"success_ttl"`
	DegradedTTL time.Duration `mapstructure:"degraded_ttl"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Scoring sets the match options used when flags are absent.
type Scoring struct {
	Strategy string `mapstructure:"strategy"`
	Limit    int    `mapstructure:"limit"`
}

// Database selects the shared store. An empty URL means the in-process
// memory store.
type Database struct {
	URL string `mapstructure:"url"`
}

// Default returns the fully populated default configuration.
func Default() Config {
	return Config{
		Engine: Engine{
			MaxConcurrency:  8,
			StrategyTimeout: 10 * time.Second,
		},
		Remote: Remote{
			Timeout: 5 * time.Second,
		},
		Breaker: Breaker{
			Threshold: 3,
			Window:    time.Minute,
		},
		Travel: Travel{
			SuccessTTL:  time.Hour,
			DegradedTTL: 5 * time.Minute,
			Timeout:     3 * time.Second,
		},
		Scoring: Scoring{
			Strategy: "auto",
			Limit:    10,
		},
	}
}

// Load builds the configuration from defaults, the optional file at path,
// and environment variables such as MATCH_BREAKER_THRESHOLD or
// MATCH_DATABASE_URL.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.debug", defaults.Log.Debug)
	v.SetDefault("engine.max_concurrency", defaults.Engine.MaxConcurrency)
	v.SetDefault("engine.strategy_timeout", defaults.Engine.StrategyTimeout)
	v.SetDefault("remote.base_url", defaults.Remote.BaseURL)
	v.SetDefault("remote.api_key", defaults.Remote.APIKey)
	v.SetDefault("remote.timeout", defaults.Remote.Timeout)
	v.SetDefault("breaker.threshold", defaults.Breaker.Threshold)
	v.SetDefault("breaker.window", defaults.Breaker.Window)
	v.SetDefault("travel.base_url", defaults.Travel.BaseURL)
	v.SetDefault("travel.api_key", defaults.Travel.APIKey)
	v.SetDefault("travel.success_ttl", defaults.Travel.SuccessTTL)
	v.SetDefault("travel.degraded_ttl", defaults.Travel.DegradedTTL)
	v.SetDefault("travel.timeout", defaults.Travel.Timeout)
	v.SetDefault("scoring.strategy", defaults.Scoring.Strategy)
	v.SetDefault("scoring.limit", defaults.Scoring.Limit)
	v.SetDefault("database.url", defaults.Database.URL)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	if c.Engine.MaxConcurrency <= 0 {
		return fmt.Errorf("config error: 'engine.max_concurrency' must be positive")
	}
	if c.Engine.StrategyTimeout <= 0 {
		return fmt.Errorf("config error: 'engine.strategy_timeout' must be positive")
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("config error: 'remote.timeout' must be positive")
	}
	if c.Breaker.Threshold <= 0 {
		return fmt.Errorf("config error: 'breaker.threshold' must be positive")
	}
	if c.Breaker.Window <= 0 {
		return fmt.Errorf("config error: 'breaker.window' must be positive")
	}
	if c.Travel.SuccessTTL <= 0 || c.Travel.DegradedTTL <= 0 {
		return fmt.Errorf("config error: travel TTLs must be positive")
	}
	if c.Travel.DegradedTTL > c.Travel.SuccessTTL {
		return fmt.Errorf("config error: 'travel.degraded_ttl' must not exceed 'travel.success_ttl'")
	}
	if c.Travel.Timeout <= 0 {
		return fmt.Errorf("config error: 'travel.timeout' must be positive")
	}
	if c.Scoring.Limit < 0 {
		return fmt.Errorf("config error: 'scoring.limit' must not be negative")
	}
	return nil
}

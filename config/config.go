package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/meenmo/zerocurve/curve"
	"github.com/meenmo/zerocurve/internal/logging"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ZEROCURVE_"

// Config is the zerocurve command configuration.
type Config struct {
	Log       logging.Config  `yaml:"log"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Redis     RedisConfig     `yaml:"redis"`
}

type BootstrapConfig struct {
	// GapPolicy is "skip" or "fail".
	GapPolicy string `yaml:"gap_policy"`
	// Decimals is the number of percent decimals in table output.
	Decimals int `yaml:"decimals"`
}

type PostgresConfig struct {
	DSN   string `yaml:"dsn"`
	Table string `yaml:"table"`
}

// RedisConfig enables the curve cache when Addr is set.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: logging.DefaultConfig,
		Bootstrap: BootstrapConfig{
			GapPolicy: string(curve.GapSkip),
			Decimals:  2,
		},
		Redis: RedisConfig{TTL: 24 * time.Hour},
	}
}

// Load builds the configuration in three layers: defaults, the YAML file at
// path (skipped when path is empty), then ZEROCURVE_* environment variables.
// A .env file in the working directory is loaded into the environment first
// without overriding variables that are already set.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("LOG_OUTPUT", &c.Log.Output)
	str("LOG_FILE", &c.Log.Filename)
	str("GAP_POLICY", &c.Bootstrap.GapPolicy)
	str("POSTGRES_DSN", &c.Postgres.DSN)
	str("POSTGRES_TABLE", &c.Postgres.Table)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)

	if v, ok := os.LookupEnv(EnvPrefix + "REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Redis.DB = db
	}
	if v, ok := os.LookupEnv(EnvPrefix + "REDIS_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_TTL: %w", EnvPrefix, err)
		}
		c.Redis.TTL = ttl
	}
	return nil
}

// Validate checks the fields that are not validated by their consumers.
func (c Config) Validate() error {
	if _, err := curve.ParseGapPolicy(c.Bootstrap.GapPolicy); err != nil {
		return fmt.Errorf("bootstrap.gap_policy: %w", err)
	}
	if c.Bootstrap.Decimals < 0 {
		return fmt.Errorf("bootstrap.decimals must be non-negative")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must be non-negative")
	}
	return nil
}

// CurveConfig converts the bootstrap section to a curve.Config.
func (c Config) CurveConfig() (curve.Config, error) {
	policy, err := curve.ParseGapPolicy(c.Bootstrap.GapPolicy)
	if err != nil {
		return curve.Config{}, err
	}
	cfg := curve.DefaultConfig
	cfg.GapPolicy = policy
	return cfg, nil
}

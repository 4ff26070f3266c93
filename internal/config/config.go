// Package config loads the bot's runtime configuration from a YAML file,
// with ZEN_* environment variables taking precedence over the file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NekroDarkmoon/Zen.A5E/internal/errors"
)

// Database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "ZEN_"

// Config holds the process configuration
type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Gateway  GatewayConfig  `yaml:"gateway"`
	Health   HealthConfig   `yaml:"health"`
	Log      LogConfig      `yaml:"log"`
	Breaker  BreakerConfig  `yaml:"breaker"`
}

// BotConfig controls command handling and lookups
type BotConfig struct {
	ID             string        `yaml:"id"`
	DisplayName    string        `yaml:"display_name"`
	DefaultPrefix  string        `yaml:"default_prefix"`
	LookupTimeout  time.Duration `yaml:"lookup_timeout"`
	CandidateLimit int           `yaml:"candidate_limit"`
	HistoryTTL     time.Duration `yaml:"history_ttl"`
	HistorySize    int           `yaml:"history_size"`
}

// DatabaseConfig selects and sizes the compendium store
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	DSN             string        `yaml:"dsn"`
	Path            string        `yaml:"path"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	Threshold       float64       `yaml:"threshold"`
}

// RedisConfig points at the guild settings store
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// GatewayConfig configures the websocket chat gateway
type GatewayConfig struct {
	Listen         string   `yaml:"listen"`
	OriginPatterns []string `yaml:"origin_patterns"`
}

// HealthConfig configures the gRPC health server
type HealthConfig struct {
	Port         int           `yaml:"port"`
	PingInterval time.Duration `yaml:"ping_interval"`
}

// LogConfig selects the logger
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// BreakerConfig tunes the store circuit breaker
type BreakerConfig struct {
	MaxFailures uint32        `yaml:"max_failures"`
	OpenTimeout time.Duration `yaml:"open_timeout"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Bot: BotConfig{
			ID:             "zen",
			DisplayName:    "Zen",
			DefaultPrefix:  "?",
			LookupTimeout:  60 * time.Second,
			CandidateLimit: 5,
			HistoryTTL:     24 * time.Hour,
			HistorySize:    10,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			DSN:             "postgres://zen@localhost:5432/zen?sslmode=disable",
			Path:            "zen.db",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Gateway: GatewayConfig{
			Listen: ":8080",
		},
		Health: HealthConfig{
			Port:         50051,
			PingInterval: 15 * time.Second,
		},
		Log: LogConfig{
			Mode: "production",
		},
		Breaker: BreakerConfig{
			MaxFailures: 5,
			OpenTimeout: 30 * time.Second,
		},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("config file not found: %s", path)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to parse config file %s", path)
		}
	}

	if err := cfg.applyEnvOverrides(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnvOverrides(lookup lookupFunc) error {
	vb := errors.NewValidationBuilder()

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			vb.InvalidField(EnvPrefix+name, "not an integer")
			return
		}
		*dst = n
	}
	dur := func(name string, dst *time.Duration) {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			vb.InvalidField(EnvPrefix+name, "not a duration")
			return
		}
		*dst = d
	}

	str("BOT_ID", &c.Bot.ID)
	str("BOT_DISPLAY_NAME", &c.Bot.DisplayName)
	str("BOT_DEFAULT_PREFIX", &c.Bot.DefaultPrefix)
	dur("BOT_LOOKUP_TIMEOUT", &c.Bot.LookupTimeout)
	num("BOT_CANDIDATE_LIMIT", &c.Bot.CandidateLimit)

	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DATABASE_DSN", &c.Database.DSN)
	str("DATABASE_PATH", &c.Database.Path)

	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASSWORD", &c.Redis.Password)
	num("REDIS_DB", &c.Redis.DB)

	str("GATEWAY_LISTEN", &c.Gateway.Listen)
	if v, ok := lookup(EnvPrefix + "GATEWAY_ORIGIN_PATTERNS"); ok {
		c.Gateway.OriginPatterns = splitList(v)
	}

	num("HEALTH_PORT", &c.Health.Port)
	str("LOG_MODE", &c.Log.Mode)

	return vb.Build()
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("bot.id", c.Bot.ID, vb)
	errors.ValidateMaxLength("bot.default_prefix", c.Bot.DefaultPrefix, 5, vb)
	if c.Bot.LookupTimeout <= 0 {
		vb.Field("bot.lookup_timeout", "must be positive")
	}
	errors.ValidateRange("bot.candidate_limit", c.Bot.CandidateLimit, 1, 25, vb)
	if c.Bot.HistoryTTL < 0 {
		vb.Field("bot.history_ttl", "must not be negative")
	}
	errors.ValidateRange("bot.history_size", c.Bot.HistorySize, 0, 100, vb)

	errors.ValidateEnum("database.driver", c.Database.Driver, []string{DriverPostgres, DriverSQLite}, vb)
	switch c.Database.Driver {
	case DriverPostgres:
		errors.ValidateRequired("database.dsn", c.Database.DSN, vb)
	case DriverSQLite:
		errors.ValidateRequired("database.path", c.Database.Path, vb)
	}
	if c.Database.Threshold < 0 || c.Database.Threshold > 1 {
		vb.Field("database.threshold", "must be between 0 and 1")
	}

	errors.ValidateRequired("redis.addr", c.Redis.Addr, vb)
	errors.ValidateRequired("gateway.listen", c.Gateway.Listen, vb)
	errors.ValidateRange("health.port", c.Health.Port, 1, 65535, vb)
	if c.Health.PingInterval <= 0 {
		vb.Field("health.ping_interval", "must be positive")
	}

	return vb.Build()
}

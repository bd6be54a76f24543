package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "BAZAAR"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Metrics MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BAZAAR_APP_ENV" default:"dev"`
	Port         string `envconfig:"BAZAAR_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BAZAAR_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BAZAAR_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// DBConfig describes the sqlite datasource. The default keeps the whole
// store in process memory, recreated on every boot.
type DBConfig struct {
	Path         string `envconfig:"BAZAAR_DB_PATH" default:":memory:"`
	SeedDemoData bool   `envconfig:"BAZAAR_DB_SEED_DEMO_DATA" default:"true"`
}

// InMemory reports whether the datasource lives in process memory only.
func (d DBConfig) InMemory() bool {
	return d.Path == ":memory:" || strings.Contains(d.Path, "mode=memory") || strings.HasPrefix(d.Path, "file::memory:")
}

// RedisConfig configures the branch notification channel. An empty URL
// disables publishing entirely.
type RedisConfig struct {
	URL           string `envconfig:"BAZAAR_REDIS_URL"`
	ChannelPrefix string `envconfig:"BAZAAR_REDIS_CHANNEL_PREFIX" default:"orders.branch"`
	PoolSize      int    `envconfig:"BAZAAR_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns  int    `envconfig:"BAZAAR_REDIS_MIN_IDLE_CONNS" default:"2"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type MetricsConfig struct {
	Enabled bool `envconfig:"BAZAAR_METRICS_ENABLED" default:"true"`
}

package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"-"`

	Host string `toml:"host"`
	Port int    `toml:"port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// prometheus
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// edge functions
	EdgeFunctionsBaseURL string `toml:"edge_functions_base_url"`

	LoginRateLimitAllowedPerMin  int `toml:"login_rate_limit_allowed_per_min"`
	AIPlanRateLimitAllowedPerMin int `toml:"ai_plan_rate_limit_allowed_per_min"`

	// BookingRenewalSchedule is a cron spec, empty disables the renewal job
	BookingRenewalSchedule string `toml:"booking_renewal_schedule"`
	DashboardCacheSizeMB   int    `toml:"dashboard_cache_size_mb"`
	DashboardCacheTTLSecs  int    `toml:"dashboard_cache_ttl_secs"`
	WizardSessionTTLMins   int    `toml:"wizard_session_ttl_mins"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.Environment = strings.ToLower(env)
	cfg.applyDefaults()
	return cfg, nil
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode toml config [%s]: %w", path, err)
	}
	return tomlConfig.Get(env)
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.LoginRateLimitAllowedPerMin == 0 {
		c.LoginRateLimitAllowedPerMin = 15
	}
	if c.AIPlanRateLimitAllowedPerMin == 0 {
		c.AIPlanRateLimitAllowedPerMin = 5
	}
	if c.DashboardCacheSizeMB == 0 {
		c.DashboardCacheSizeMB = 16
	}
	if c.DashboardCacheTTLSecs == 0 {
		c.DashboardCacheTTLSecs = 300
	}
	if c.WizardSessionTTLMins == 0 {
		c.WizardSessionTTLMins = 60
	}
}

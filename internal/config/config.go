package config

import (
	"fmt"
	"time"
)

// Config holds the application's configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Climate    ClimateConfig    `mapstructure:"climate"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Reference  ReferenceConfig  `mapstructure:"reference"`
	Assessment AssessmentConfig `mapstructure:"assessment"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	PprofEnabled   bool          `mapstructure:"pprof_enabled"`
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ClimateConfig 气候风险服务配置
type ClimateConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	AssetValue     float64       `mapstructure:"asset_value"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	BatchDeadline  time.Duration `mapstructure:"batch_deadline"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`
	Enabled        bool          `mapstructure:"enabled"`
	WarmOnStartup  bool          `mapstructure:"warm_on_startup"`
	WarmParallel   int           `mapstructure:"warm_parallelism"`
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Mode         string        `mapstructure:"mode"`
	Address      string        `mapstructure:"address"`
	ClusterAddrs []string      `mapstructure:"cluster_addrs"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	TTL          time.Duration `mapstructure:"ttl"`
}

// ReferenceConfig selects where the lookup tables come from.
type ReferenceConfig struct {
	Source string `mapstructure:"source"` // embedded | database
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
}

type AssessmentConfig struct {
	DefaultTopN int `mapstructure:"default_top_n"`
	MaxTopN     int `mapstructure:"max_top_n"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`
	Burst   int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	ServiceName    string  `mapstructure:"service_name"`
	Environment    string  `mapstructure:"environment"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}
	if c.Climate.Enabled && c.Climate.BaseURL == "" {
		return fmt.Errorf("climate.base_url is required when climate.enabled is true")
	}
	if c.Climate.RequestTimeout <= 0 {
		return fmt.Errorf("climate.request_timeout must be positive")
	}
	// slow calls must fail on their own timer before the batch gives up on them
	if c.Climate.BatchDeadline <= c.Climate.RequestTimeout {
		return fmt.Errorf("climate.batch_deadline (%s) must exceed climate.request_timeout (%s)",
			c.Climate.BatchDeadline, c.Climate.RequestTimeout)
	}
	if c.Climate.CacheTTL <= 0 {
		return fmt.Errorf("climate.cache_ttl must be positive")
	}
	if c.Climate.AssetValue <= 0 {
		return fmt.Errorf("climate.asset_value must be positive")
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be positive")
	}
	switch c.Reference.Source {
	case "embedded":
	case "database":
		if c.Reference.Driver != "sqlite" && c.Reference.Driver != "postgres" {
			return fmt.Errorf("reference.driver must be sqlite or postgres, got %q", c.Reference.Driver)
		}
		if c.Reference.DSN == "" {
			return fmt.Errorf("reference.dsn is required for the database source")
		}
	default:
		return fmt.Errorf("reference.source must be embedded or database, got %q", c.Reference.Source)
	}
	if c.Assessment.MaxTopN < 1 || c.Assessment.MaxTopN > 20 {
		return fmt.Errorf("assessment.max_top_n must be within [1, 20]")
	}
	if c.Assessment.DefaultTopN < 1 || c.Assessment.DefaultTopN > c.Assessment.MaxTopN {
		return fmt.Errorf("assessment.default_top_n must be within [1, max_top_n]")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive")
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("tracing.sampling_rate must be within [0, 1]")
	}
	return nil
}

//Personal.AI order the ending

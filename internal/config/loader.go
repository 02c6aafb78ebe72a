package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/turtacn/supplyrisk/pkg/constants"
	apperrors "github.com/turtacn/supplyrisk/pkg/errors"
)

// SetDefaults registers every key so environment overrides are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.pprof_enabled", false)

	v.SetDefault("climate.base_url", "http://localhost:8000")
	v.SetDefault("climate.asset_value", constants.DefaultAssetValue)
	v.SetDefault("climate.request_timeout", constants.ClimateRequestTimeout)
	v.SetDefault("climate.batch_deadline", constants.ClimateBatchDeadline)
	v.SetDefault("climate.cache_ttl", constants.ClimateCacheTTL)
	v.SetDefault("climate.enabled", true)
	v.SetDefault("climate.warm_on_startup", false)
	v.SetDefault("climate.warm_parallelism", 4)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.mode", "standalone")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.cluster_addrs", []string{})
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.key_prefix", constants.RedisLossKeyPrefix)
	v.SetDefault("redis.ttl", constants.ClimateCacheTTL)

	v.SetDefault("reference.source", string(constants.ReferenceSourceEmbedded))
	v.SetDefault("reference.driver", "sqlite")
	v.SetDefault("reference.dsn", "")

	v.SetDefault("assessment.default_top_n", constants.DefaultTopN)
	v.SetDefault("assessment.max_top_n", constants.MaxTopN)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 10.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
	v.SetDefault("tracing.service_name", constants.ServiceName)
	v.SetDefault("tracing.environment", "development")
	v.SetDefault("tracing.sampling_rate", 0.1)
}

// LoadConfig loads the configuration from file and environment variables.
// An explicit path overrides the default search locations.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("/etc/supplyrisk/")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, apperrors.ErrInternalServer("failed to read config").WithError(err)
		}
	}

	v.SetEnvPrefix("SUPPLYRISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.ErrInternalServer("failed to unmarshal config").WithError(err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.ErrInvalidRequest("invalid configuration", err.Error()).WithError(err)
	}

	return &cfg, nil
}

//Personal.AI order the ending

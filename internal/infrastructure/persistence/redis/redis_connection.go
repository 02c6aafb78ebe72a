// Package redis provides the Redis connection and the shared expected-loss store
// that backs the climate client's in-process cache.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/turtacn/supplyrisk/pkg/logger"
)

// ConnectionMode defines Redis deployment mode
type ConnectionMode string

const (
	// ModeStandalone represents single Redis instance
	ModeStandalone ConnectionMode = "standalone"
	// ModeCluster represents Redis cluster mode
	ModeCluster ConnectionMode = "cluster"
)

const connectTimeout = 5 * time.Second

// Config holds Redis connection parameters. Zero values get defaults on Connect.
type Config struct {
	Mode         ConnectionMode
	Address      string
	ClusterAddrs []string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Mode == "" {
		c.Mode = ModeStandalone
	}
	if c.Address == "" {
		c.Address = "localhost:6379"
	}
	if c.PoolSize == 0 {
		c.PoolSize = 10
	}
	if c.MinIdleConns == 0 {
		c.MinIdleConns = 2
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = 5 * time.Second
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 3 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 3 * time.Second
	}
	return c
}

// universalOptions maps the mode onto go-redis options. Cluster mode
// ignores DB since Redis Cluster only has database 0.
func (c Config) universalOptions() (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{
		Password:     c.Password,
		PoolSize:     c.PoolSize,
		MinIdleConns: c.MinIdleConns,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
	switch c.Mode {
	case ModeStandalone:
		opts.Addrs = []string{c.Address}
		opts.DB = c.DB
	case ModeCluster:
		if len(c.ClusterAddrs) == 0 {
			return nil, fmt.Errorf("cluster addresses not configured")
		}
		opts.Addrs = c.ClusterAddrs
		opts.IsClusterMode = true
	default:
		return nil, fmt.Errorf("unsupported Redis mode: %s", c.Mode)
	}
	return opts, nil
}

// RedisConnection owns the client used by the shared expected-loss store.
// RedisConnection 管理共享预期损失缓存使用的 Redis 客户端。
type RedisConnection struct {
	config Config
	client redis.UniversalClient
	logger logger.Logger
}

// NewRedisConnection creates an unconnected manager; call Connect before use.
func NewRedisConnection(config *Config, log logger.Logger) *RedisConnection {
	return &RedisConnection{
		config: config.withDefaults(),
		logger: log.WithComponent("RedisConnection"),
	}
}

// NewRedisConnectionFromClient wraps an already constructed client.
func NewRedisConnectionFromClient(client redis.UniversalClient, log logger.Logger) *RedisConnection {
	return &RedisConnection{
		config: Config{Mode: ModeStandalone},
		client: client,
		logger: log.WithComponent("RedisConnection"),
	}
}

// Connect builds the client for the configured mode and verifies it with a
// ping. A failed ping leaves the connection unusable.
func (rc *RedisConnection) Connect(ctx context.Context) error {
	if rc.client != nil {
		rc.logger.Warn(ctx, "Redis connection already initialized")
		return nil
	}

	opts, err := rc.config.universalOptions()
	if err != nil {
		return err
	}
	client := redis.NewUniversalClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		rc.logger.Error(ctx, "Redis ping failed", err, logger.Fields{"mode": rc.config.Mode})
		_ = client.Close()
		return fmt.Errorf("redis ping failed: %w", err)
	}

	rc.client = client
	rc.logger.Info(ctx, "Redis connection established", logger.Fields{
		"mode":      rc.config.Mode,
		"pool_size": rc.config.PoolSize,
	})
	return nil
}

// GetClient returns the client, or nil before Connect.
func (rc *RedisConnection) GetClient() redis.UniversalClient {
	return rc.client
}

// Ping checks Redis server connectivity. Used by the health endpoint.
func (rc *RedisConnection) Ping(ctx context.Context) error {
	if rc.client == nil {
		return fmt.Errorf("redis connection not initialized")
	}
	return rc.client.Ping(ctx).Err()
}

// Close releases the client. It is safe to call more than once.
func (rc *RedisConnection) Close() error {
	if rc.client == nil {
		return nil
	}
	err := rc.client.Close()
	rc.client = nil
	if err != nil {
		rc.logger.Error(context.Background(), "Failed to close Redis connection", err)
		return err
	}
	rc.logger.Info(context.Background(), "Redis connection closed")
	return nil
}

//Personal.AI order the ending

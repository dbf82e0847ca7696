package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultServiceName       = "orderflow"
	defaultEnv               = "dev"
	defaultHTTPAddr          = ":8080"
	defaultOrderTopic        = "orders.placed"
	defaultCustomerCacheTTL  = 5 * time.Minute
	defaultShutdownTimeout   = 10 * time.Second
	defaultLowStockThreshold = 5
)

// Config holds the environment-specific settings. Redis and Kafka are
// optional: leaving their addresses empty keeps the service fully
// in-process.
type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string

	RedisAddr        string
	CustomerCacheTTL time.Duration

	KafkaBroker string
	OrderTopic  string

	ShutdownTimeout   time.Duration
	LowStockThreshold int
}

func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:       getenvDefault("SERVICE_NAME", defaultServiceName),
		Env:               getenvDefault("ENV", defaultEnv),
		HTTPAddr:          getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		OrderTopic:        getenvDefault("ORDER_TOPIC", defaultOrderTopic),
		CustomerCacheTTL:  defaultCustomerCacheTTL,
		ShutdownTimeout:   defaultShutdownTimeout,
		LowStockThreshold: defaultLowStockThreshold,
	}

	if v := os.Getenv("CUSTOMER_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CUSTOMER_CACHE_TTL: %w", err)
		}
		cfg.CustomerCacheTTL = ttl
	}
	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}
	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("LOW_STOCK_THRESHOLD: must be a non-negative integer, got %q", v)
		}
		cfg.LowStockThreshold = n
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

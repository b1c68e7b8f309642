// Package config contains all knobs and defaults used to configure the
// buildgrid query layer.
package config

import (
	"fmt"
	"time"
)

const (
	DefaultPageSize    = 50
	DefaultMaxPageSize = 1000

	DefaultCloudDescribeRetries   = 3
	DefaultCloudDescribeCacheTTL  = 30 * time.Second
	DefaultCloudDescribeCacheSize = 10000
)

// Config defines the operational settings of the query layer.
type Config struct {
	// PageSize is the window size transports are expected to fill in when a
	// request carries no explicit count/first/last. The query layer itself
	// only enforces MaxPageSize.
	PageSize int

	// MaxPageSize caps any requested window.
	MaxPageSize int

	// CloudDescribeRetries bounds the retry attempts of a live cloud image
	// describe call before the edge is reported as failed.
	CloudDescribeRetries int

	// CloudDescribeCacheTTL is how long a resolved cloud image node may be
	// served from cache.
	CloudDescribeCacheTTL time.Duration

	// CloudDescribeCacheSize is the entry limit of the describe cache.
	CloudDescribeCacheSize int64

	// Log configures the zap logger backing the query layer.
	Log LogConfig
}

type LogConfig struct {
	// Format is one of "text" or "json".
	Format string

	// Level is one of "none", "debug", "info", "warn", "error".
	Level string
}

func (c *Config) Verify() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("config 'pageSize' must be positive, got %d", c.PageSize)
	}
	if c.MaxPageSize < c.PageSize {
		return fmt.Errorf("config 'maxPageSize' (%d) must not be below 'pageSize' (%d)", c.MaxPageSize, c.PageSize)
	}
	if c.CloudDescribeRetries < 0 {
		return fmt.Errorf("config 'cloudDescribeRetries' must not be negative, got %d", c.CloudDescribeRetries)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config 'log.format' must be one of ['text', 'json']")
	}

	switch c.Log.Level {
	case "none", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config 'log.level' must be one of ['none', 'debug', 'info', 'warn', 'error']")
	}

	return nil
}

// DefaultConfig returns the config a deployment starts from.
func DefaultConfig() *Config {
	return &Config{
		PageSize:               DefaultPageSize,
		MaxPageSize:            DefaultMaxPageSize,
		CloudDescribeRetries:   DefaultCloudDescribeRetries,
		CloudDescribeCacheTTL:  DefaultCloudDescribeCacheTTL,
		CloudDescribeCacheSize: DefaultCloudDescribeCacheSize,
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
	}
}

package models

import (
	"fmt"
	"time"
)

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	Tracking TrackingConfig
	History  HistoryConfig
	Logger   LoggerConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// URL renders the postgres connection URL
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
		c.SSLMode,
	)
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains NSQ connection configuration. An empty NSQDAddress disables messaging.
type NSQConfig struct {
	NSQDAddress      string
	LookupdAddresses []string
	Channel          string
}

// Enabled reports whether an nsqd address is configured
func (c NSQConfig) Enabled() bool {
	return c.NSQDAddress != ""
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// TrackingConfig holds the watch defaults used when a guardian has no saved settings
type TrackingConfig struct {
	IntervalMs        int
	MinDistanceMeters float64
	FeedBufferSize    int
}

// Interval returns IntervalMs as a duration
func (c TrackingConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}

// HistoryConfig controls the history store backend and retention
type HistoryConfig struct {
	Backend         string // redis or postgres
	MaxSamples      int64
	RetentionHours  int
	BatchSize       int
	QueueSize       int
	FlushIntervalMs int
}

// Retention returns the retention window, zero when unbounded
func (c HistoryConfig) Retention() time.Duration {
	return time.Duration(c.RetentionHours) * time.Hour
}

// FlushInterval returns FlushIntervalMs as a duration
func (c HistoryConfig) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMs) * time.Millisecond
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

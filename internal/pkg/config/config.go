package config

import (
	"log"
	"os"
	"strings"

	"github.com/piresc/kidtrack/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig builds the application config. Environment variables always win; in the
// local environment the dotenv file at configPath is read first.
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()

	local := GetEnv("APP_ENV", "local")
	if local == "local" && configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	return loadConfig(v)
}

func loadConfig(v *viper.Viper) *models.Config {
	setDefaults(v)
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// NSQ config
	configs.NSQ.NSQDAddress = v.GetString("NSQD_ADDRESS")
	configs.NSQ.LookupdAddresses = splitList(v.GetString("NSQ_LOOKUPD_ADDRESSES"))
	configs.NSQ.Channel = v.GetString("NSQ_CHANNEL")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	// Tracking config
	configs.Tracking.IntervalMs = v.GetInt("TRACKING_INTERVAL_MS")
	configs.Tracking.MinDistanceMeters = v.GetFloat64("TRACKING_MIN_DISTANCE_METERS")
	configs.Tracking.FeedBufferSize = v.GetInt("TRACKING_FEED_BUFFER_SIZE")

	// History config
	configs.History.Backend = strings.ToLower(v.GetString("HISTORY_BACKEND"))
	configs.History.MaxSamples = v.GetInt64("HISTORY_MAX_SAMPLES")
	configs.History.RetentionHours = v.GetInt("HISTORY_RETENTION_HOURS")
	configs.History.BatchSize = v.GetInt("HISTORY_BATCH_SIZE")
	configs.History.QueueSize = v.GetInt("HISTORY_QUEUE_SIZE")
	configs.History.FlushIntervalMs = v.GetInt("HISTORY_FLUSH_INTERVAL_MS")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "kidtrack")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NSQ_CHANNEL", "kidtrack")

	v.SetDefault("JWT_EXPIRATION", 60)
	v.SetDefault("JWT_ISSUER", "kidtrack")

	v.SetDefault("TRACKING_INTERVAL_MS", 5000)
	v.SetDefault("TRACKING_MIN_DISTANCE_METERS", 5.0)
	v.SetDefault("TRACKING_FEED_BUFFER_SIZE", 32)

	v.SetDefault("HISTORY_BACKEND", "redis")
	v.SetDefault("HISTORY_MAX_SAMPLES", 10000)
	v.SetDefault("HISTORY_RETENTION_HOURS", 720)
	v.SetDefault("HISTORY_BATCH_SIZE", 50)
	v.SetDefault("HISTORY_QUEUE_SIZE", 1024)
	v.SetDefault("HISTORY_FLUSH_INTERVAL_MS", 1000)

	v.SetDefault("LOG_LEVEL", "info")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// GetEnv reads an environment variable with a fallback
func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

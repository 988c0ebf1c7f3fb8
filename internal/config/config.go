package config

import (
	"os"
	"strconv"
)

// Config facilops-data (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr string
	}

	// RTDB is the realtime document store all collections live in.
	RTDB struct {
		BaseURL string
		Token   string
	}

	// DBEnabled turns on the Postgres presence archive. Default off so a
	// plain `go run` works against the realtime store (or memory) alone.
	DBEnabled bool
	Database  DatabaseConfig

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	OCR struct {
		BaseURL string
		APIKey  string
	}

	MQTT MQTTConfig

	Log struct {
		Level  string
		Format string
	}
}

// DatabaseConfig Postgres connection settings for the presence archive.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// MQTTConfig settings for the optional device-status notifier.
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string // topic prefix, warehouse name appended per message
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.RTDB.BaseURL = getEnv("RTDB_BASE_URL", "")
	cfg.RTDB.Token = getEnv("RTDB_TOKEN", "")

	cfg.DBEnabled = getEnv("DB_ENABLED", "false") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "facilops")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.OCR.BaseURL = getEnv("OCR_BASE_URL", "")
	cfg.OCR.APIKey = getEnv("OCR_API_KEY", "")

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "facilops-data")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "facilops/status")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

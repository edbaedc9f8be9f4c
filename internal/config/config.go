package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token store kinds for the command-line client.
const (
	TokenStoreBolt  = "bolt"
	TokenStoreRedis = "redis"
)

// Config aggregates all runtime settings of the web frontend and the CLI.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	API         APIConfig
	Session     SessionConfig
	TokenStore  TokenStoreConfig
	Redis       RedisConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxConn      int
}

// APIConfig points at the remote goal-tracker REST API.
type APIConfig struct {
	URL             string
	Timeout         time.Duration
	HealthPath      string
	MonitorInterval time.Duration
}

type SessionConfig struct {
	CheckExpiry bool
}

type TokenStoreConfig struct {
	Kind     string
	BoltPath string
	Prefix   string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so both binaries boot against a local API.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "goal-tracker"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			MaxConn:      getInt("SERVER_MAX_CONN", 0),
		},
		API: APIConfig{
			URL:             strings.TrimRight(getString("API_URL", "http://localhost:5000"), "/"),
			Timeout:         getDuration("API_TIMEOUT", 10*time.Second),
			HealthPath:      getString("API_HEALTH_PATH", "/health"),
			MonitorInterval: getDuration("MONITOR_INTERVAL", 30*time.Second),
		},
		Session: SessionConfig{
			CheckExpiry: getBool("SESSION_CHECK_EXPIRY", false),
		},
		TokenStore: TokenStoreConfig{
			Kind:     strings.ToLower(getString("TOKEN_STORE", TokenStoreBolt)),
			BoltPath: getString("BOLTDB_PATH", defaultBoltPath()),
			Prefix:   getString("TOKEN_STORE_PREFIX", "goalctl:"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 15*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: API_URL %q is not an http(s) URL", c.API.URL)
	}
	switch c.TokenStore.Kind {
	case TokenStoreBolt, TokenStoreRedis:
	default:
		return fmt.Errorf("config: unknown TOKEN_STORE %q", c.TokenStore.Kind)
	}
	return nil
}

func defaultBoltPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/goal-tracker/session.db"
	}
	return "./data/session.db"
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}

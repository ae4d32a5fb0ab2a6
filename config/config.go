package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Port     string `yaml:"port"`
	LogLevel string `yaml:"logLevel"`

	NebiusAPIKey string `yaml:"-"`
	LLMBaseURL   string `yaml:"llmBaseURL"`
	LLMModel     string `yaml:"llmModel"`

	HFToken       string `yaml:"-"`
	ImageModelURL string `yaml:"imageModelURL"`

	StoreBackend  string        `yaml:"storeBackend"`
	DatabaseURL   string        `yaml:"-"`
	DBMaxConns    int           `yaml:"dbMaxConns"`
	DBMinConns    int           `yaml:"dbMinConns"`
	RedisAddr     string        `yaml:"redisAddr"`
	RedisPassword string        `yaml:"-"`
	SessionTTL    time.Duration `yaml:"sessionTTL"`
	// MemoryStoreSize caps the in-memory backend's entry count
	MemoryStoreSize int `yaml:"memoryStoreSize"`

	SlackToken     string `yaml:"-"`
	SlackChannelID string `yaml:"slackChannelID"`
}

// LoadConfig loads configuration from an optional YAML file and environment variables.
// It first tries to load a .env file, then reads the YAML file when it exists,
// then lets environment variables override both.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.NebiusAPIKey = getEnv("NEBIUS_API_KEY", cfg.NebiusAPIKey)
	cfg.LLMBaseURL = getEnv("LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.LLMModel = getEnv("LLM_MODEL", cfg.LLMModel)
	cfg.HFToken = getEnv("HF_TOKEN", cfg.HFToken)
	cfg.ImageModelURL = getEnv("IMAGE_MODEL_URL", cfg.ImageModelURL)
	cfg.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", cfg.StoreBackend))
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.SlackToken = getEnv("SLACK_BOT_TOKEN", cfg.SlackToken)
	cfg.SlackChannelID = getEnv("SLACK_CHANNEL_ID", cfg.SlackChannelID)

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = ttl
	}
	for key, dst := range map[string]*int{
		"MEMORY_STORE_SIZE": &cfg.MemoryStoreSize,
		"DB_MAX_CONNS":      &cfg.DBMaxConns,
		"DB_MIN_CONNS":      &cfg.DBMinConns,
	} {
		if err := getEnvInt(key, dst); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:         "3000",
		LogLevel:     "info",
		StoreBackend: StoreMemory,
		SessionTTL:   30 * 24 * time.Hour,

		MemoryStoreSize: 100000,
		DBMaxConns:      10,
		DBMinConns:      2,
	}
}

func getEnvInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Validate checks structural settings. Provider tokens stay optional so the
// API can answer with a "token not configured" error instead of refusing to start.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.MemoryStoreSize < 0 {
		return fmt.Errorf("MEMORY_STORE_SIZE must not be negative")
	}
	if c.DBMaxConns < 0 || c.DBMinConns < 0 {
		return fmt.Errorf("DB_MAX_CONNS and DB_MIN_CONNS must not be negative")
	}
	if c.DBMaxConns > 0 && c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must not exceed DB_MAX_CONNS")
	}
	return nil
}

// SlackEnabled reports whether saved posts can be shared to Slack
func (c *Config) SlackEnabled() bool {
	return c.SlackToken != "" && c.SlackChannelID != ""
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic information about the application.
type AppInfo struct {
	Name        string `yaml:"name"`        // Application name
	Version     string `yaml:"version"`     // Application version
	Environment string `yaml:"environment"` // Runtime environment (e.g. "development", "production")
}

// LoggerConfig configures the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // Log level (e.g. "info", "debug", "warn", "error")
}

// ServerConfig configures the inbound HTTP server.
type ServerConfig struct {
	Address string `yaml:"address"` // Listen address (e.g. ":8080")
}

// ZepConfig configures the connection to the hosted graph-memory store.
type ZepConfig struct {
	APIKey  string `yaml:"apiKey"`  // API key; the ZEP_API_KEY env var takes precedence
	BaseURL string `yaml:"baseURL"` // Store endpoint; defaults to the hosted cloud API
	GraphID string `yaml:"graphID"` // Graph namespace shared by all users of this application
}

// KafkaConfig configures the optional async turn-ingestion path.
// Leaving Brokers empty disables the consumer entirely.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"` // Kafka broker address list
	Topic   string   `yaml:"topic"`   // Topic carrying conversation-turn events
	GroupID string   `yaml:"groupID"` // Consumer group id
}

// DatabaseConfigs groups all external data-plane connections.
type DatabaseConfigs struct {
	Kafka KafkaConfig `yaml:"kafka"`
}

// RateLimiterConfig configures inbound request rate limiting.
type RateLimiterConfig struct {
	Enabled     bool              `yaml:"enabled"`
	Algorithm   string            `yaml:"algorithm"` // "tokenBucket" or "fixedWindow"
	TokenBucket TokenBucketConfig `yaml:"tokenBucket"`
	FixedWindow FixedWindowConfig `yaml:"fixedWindow"`
}

// TokenBucketConfig configures the token bucket algorithm.
type TokenBucketConfig struct {
	Rate     float64 `yaml:"rate"` // Tokens per second
	Capacity int     `yaml:"capacity"`
}

// FixedWindowConfig configures the fixed window counter algorithm.
type FixedWindowConfig struct {
	Limit  int    `yaml:"limit"`
	Window string `yaml:"window"` // e.g. "1m", "30s"
}

// CircuitBreakerConfig configures the breaker guarding outbound store calls.
type CircuitBreakerConfig struct {
	Enabled          bool   `yaml:"enabled"`
	FailureThreshold uint32 `yaml:"failureThreshold"`
	SuccessThreshold uint32 `yaml:"successThreshold"`
	Timeout          string `yaml:"timeout"` // e.g. "30s"
}

// MiddlewareConfig groups resilience middleware configuration.
type MiddlewareConfig struct {
	RateLimiter    RateLimiterConfig    `yaml:"rateLimiter"`
	CircuitBreaker CircuitBreakerConfig `yaml:"circuitBreaker"`
}

// AppConfig is the root of the YAML configuration file.
type AppConfig struct {
	App        AppInfo          `yaml:"app"`
	Logger     LoggerConfig     `yaml:"logger"`
	Server     ServerConfig     `yaml:"server"`
	Zep        ZepConfig        `yaml:"zep"`
	Databases  DatabaseConfigs  `yaml:"databases"`
	Middleware MiddlewareConfig `yaml:"middleware"`
}

// LoadConfig loads and parses the YAML configuration file at path.
// The ZEP_API_KEY environment variable, when set, overrides the file
// value so the credential never has to live on disk.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if key := os.Getenv("ZEP_API_KEY"); key != "" {
		cfg.Zep.APIKey = key
	}

	return &cfg, nil
}

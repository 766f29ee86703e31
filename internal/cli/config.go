package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/api"
	"github.com/food-punch-karachi/server/internal/core"
	logx "github.com/food-punch-karachi/server/pkg/logger"
	pkgredis "github.com/food-punch-karachi/server/pkg/redis"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// AppConfig defines all configurable parameters of the server, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL"`

	// LLM provider; either variable may carry the key.
	APIKey       string `envconfig:"API_KEY"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
	BaseURL      string `envconfig:"GEMINI_BASE_URL"`

	// Infrastructure
	StoreBackend string `envconfig:"STORE_BACKEND" default:"memory"`
	Redis        pkgredis.Config
	HTTP         api.Config

	// Agent configs
	Chat         model.ChatModelConfig
	Prompt       model.PromptConfig
	Conversation model.ConversationConfig
}

// ResolvedAPIKey prefers API_KEY and falls back to GEMINI_API_KEY.
func (c *AppConfig) ResolvedAPIKey() string {
	if k := strings.TrimSpace(c.APIKey); k != "" {
		return k
	}
	return strings.TrimSpace(c.GeminiAPIKey)
}

// ConversationTTL parses CONVERSATION_TTL.
func (c *AppConfig) ConversationTTL() (time.Duration, error) {
	ttl, err := time.ParseDuration(c.Conversation.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid CONVERSATION_TTL %q: %w", c.Conversation.TTL, err)
	}
	return ttl, nil
}

// Validate reports configuration that would only fail later at request time.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.ResolvedAPIKey() == "" {
		errs = append(errs, errors.New("API_KEY or GEMINI_API_KEY must be set"))
	}
	switch c.StoreBackend {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("REDIS_URL must be set when STORE_BACKEND=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if _, err := c.ConversationTTL(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// loadConfig reads envFile when present and binds the environment.
func loadConfig(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	return &cfg, nil
}

// initLogging configures the global logger; flagLevel wins over LOG_LEVEL.
func initLogging(cfg *AppConfig, flagLevel string) {
	level := cfg.LogLevel
	if flagLevel != "" {
		level = flagLevel
	}
	logx.Init(logx.LoggerOpts{
		Environment: core.ParseEnvironment(cfg.Environment),
		Level:       level,
	})
}

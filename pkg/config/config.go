package config

import (
	"log"
	"os"
	"time"

	"github.com/willtroppe/callrep/pkg/logger"
	"github.com/willtroppe/callrep/pkg/utils"
)

// Config holds the process-wide configuration loaded from the environment.
type Config struct {
	ServerName string `env:"SERVER_NAME"`
	DBDriver   string `env:"DB_DRIVER"`
	DSN        string `env:"DSN"`
	Log        logger.LogConfig
	Addr       string `env:"ADDR"`
	Mode       string `env:"MODE"`
	APIPrefix  string `env:"API_PREFIX"`

	SessionSecret string `env:"SESSION_SECRET"`
	SessionMaxAge int    `env:"SESSION_MAX_AGE"` // seconds

	// How long an idle in-memory calling session is kept before eviction.
	WorkflowTTL time.Duration `env:"WORKFLOW_TTL"`

	// External civic directory lookup (disabled when URL is empty).
	CivicAPIURL   string        `env:"CIVIC_API_URL"`
	CivicAPIKey   string        `env:"CIVIC_API_KEY"`
	CivicCacheTTL time.Duration `env:"CIVIC_CACHE_TTL"`

	// LLM-backed script generation (local template fallback when key is empty).
	LLMApiKey  string `env:"LLM_API_KEY"`
	LLMBaseURL string `env:"LLM_BASE_URL"`
	LLMModel   string `env:"LLM_MODEL"`
}

var GlobalConfig *Config

// Load reads the .env file (when present) and builds GlobalConfig with
// defaults so the server starts with no configuration at all.
func Load() error {
	env := os.Getenv("APP_ENV")
	if err := utils.LoadEnv(env); err != nil {
		log.Printf("Note: .env file not found or failed to load: %v (using default values)", err)
	}

	GlobalConfig = &Config{
		ServerName: getStringOrDefault("SERVER_NAME", "callrep"),
		DBDriver:   getStringOrDefault("DB_DRIVER", "sqlite"),
		DSN:        getStringOrDefault("DSN", "./callrep.db"),
		Addr:       getStringOrDefault("ADDR", ":8080"),
		Mode:       getStringOrDefault("MODE", "development"),
		APIPrefix:  getStringOrDefault("API_PREFIX", "/api"),
		Log: logger.LogConfig{
			Level:      getStringOrDefault("LOG_LEVEL", "info"),
			Filename:   getStringOrDefault("LOG_FILENAME", "./logs/app.log"),
			MaxSize:    getIntOrDefault("LOG_MAX_SIZE", 100),
			MaxAge:     getIntOrDefault("LOG_MAX_AGE", 30),
			MaxBackups: getIntOrDefault("LOG_MAX_BACKUPS", 5),
			Daily:      getBoolOrDefault("LOG_DAILY", true),
		},
		SessionSecret: getStringOrDefault("SESSION_SECRET", "dev-secret-"+utils.RandText(16)),
		SessionMaxAge: getIntOrDefault("SESSION_MAX_AGE", 7*24*3600),
		WorkflowTTL:   getDurationOrDefault("WORKFLOW_TTL", 4*time.Hour),
		CivicAPIURL:   getStringOrDefault("CIVIC_API_URL", ""),
		CivicAPIKey:   getStringOrDefault("CIVIC_API_KEY", ""),
		CivicCacheTTL: getDurationOrDefault("CIVIC_CACHE_TTL", 15*time.Minute),
		LLMApiKey:     getStringOrDefault("LLM_API_KEY", ""),
		LLMBaseURL:    getStringOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:      getStringOrDefault("LLM_MODEL", "gpt-4o-mini"),
	}
	return nil
}

func getStringOrDefault(key, defaultValue string) string {
	value := utils.GetEnv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if utils.GetEnv(key) == "" {
		return defaultValue
	}
	return utils.GetBoolEnv(key)
}

func getIntOrDefault(key string, defaultValue int) int {
	value := utils.GetIntEnv(key)
	if value == 0 {
		return defaultValue
	}
	return int(value)
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := utils.GetDurationEnv(key)
	if value == 0 {
		return defaultValue
	}
	return time.Duration(value)
}

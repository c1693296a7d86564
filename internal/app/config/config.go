// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the root configuration of the service.
type Config struct {
	Server ServerConfig
	Auth   AuthConfig
	Redis  RedisConfig
	LLM    LLMConfig
	Vision VisionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr               string   `envconfig:"SERVER_ADDR" default:":8080"`
	GinMode            string   `envconfig:"GIN_MODE" default:"release"`
	LogLevel           string   `envconfig:"LOG_LEVEL" default:"info"`
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// AuthConfig holds demo login and session settings.
type AuthConfig struct {
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	IdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"60m"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"12h"`
	// DemoUsers is a comma separated list of username:password pairs.
	DemoUsers string `envconfig:"DEMO_USERS" default:"demo:letmein123,sandeep:secret123"`
}

// RedisConfig holds the optional session store connection.
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
}

// Enabled reports whether a Redis host was configured.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port.
func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// LLMConfig holds the chat-completion provider settings.
// API keys may be empty at startup; a missing key is reported when a call is made.
type LLMConfig struct {
	Provider           string        `envconfig:"LLM_PROVIDER" default:"groq"`
	GroqAPIKey         string        `envconfig:"GROQ_API_KEY"`
	GroqBaseURL        string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1/"`
	GeminiAPIKey       string        `envconfig:"GEMINI_API_KEY"`
	Timeout            time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	RateLimitPerMinute int           `envconfig:"LLM_RATE_LIMIT_PER_MINUTE" default:"0"`
}

// VisionConfig toggles OCR through Google Cloud Vision (uses ADC).
type VisionConfig struct {
	Enabled bool `envconfig:"VISION_OCR_ENABLED" default:"false"`
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	return &cfg, nil
}

// ParseDemoUsers parses "user:pass,user2:pass2" into a map.
// Malformed entries are skipped.
func ParseDemoUsers(raw string) map[string]string {
	users := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		name, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || name == "" || pass == "" {
			continue
		}
		users[name] = pass
	}
	return users
}

// ParseLogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

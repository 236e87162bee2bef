package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingDatabaseDSN = errors.New("DATABASE_DSN is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

type Config struct {
	Env         string
	Port        string
	LogLevel    string
	LogFormat   string
	DatabaseDSN string
	AutoMigrate bool
	JWTSecret   string
	CryptoKey   string

	Completion CompletionConfig
	Quiz       QuizConfig

	RedisAddr     string
	RedisPassword string

	CORSAllowedOrigins []string
}

type CompletionConfig struct {
	Provider      string
	APIKey        string
	BaseURL       string
	Model         string
	Referer       string
	RatePerSecond float64
	RateBurst     int
}

type QuizConfig struct {
	MaxRetries      int
	Temperature     float64
	TemperatureStep float64
	MaxTokens       int
	CallTimeout     time.Duration
	LockTTL         time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("COMPLETION_PROVIDER", "openrouter")
	v.SetDefault("COMPLETION_RATE_PER_SECOND", 0)
	v.SetDefault("COMPLETION_RATE_BURST", 1)
	v.SetDefault("COMPLETION_TEMPERATURE", 0.7)
	v.SetDefault("COMPLETION_MAX_TOKENS", 1000)
	v.SetDefault("COMPLETION_TIMEOUT", "60s")
	v.SetDefault("QUIZ_MAX_RETRIES", 3)
	v.SetDefault("QUIZ_RETRY_TEMPERATURE_STEP", 0.2)
	v.SetDefault("GENERATION_LOCK_TTL", "90s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

// Load reads settings from the environment, after loading an optional .env
// file. The completion credential is not required here: generation reports
// its absence per request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		Port:          v.GetString("PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFormat:     v.GetString("LOG_FORMAT"),
		DatabaseDSN:   strings.TrimSpace(v.GetString("DATABASE_DSN")),
		AutoMigrate:   v.GetBool("DB_AUTO_MIGRATE"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		CryptoKey:     v.GetString("CRYPTO_KEY"),
		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		Completion: CompletionConfig{
			Provider:      strings.ToLower(strings.TrimSpace(v.GetString("COMPLETION_PROVIDER"))),
			BaseURL:       strings.TrimSpace(v.GetString("COMPLETION_BASE_URL")),
			Model:         strings.TrimSpace(v.GetString("COMPLETION_MODEL")),
			Referer:       strings.TrimSpace(v.GetString("COMPLETION_REFERER")),
			RatePerSecond: v.GetFloat64("COMPLETION_RATE_PER_SECOND"),
			RateBurst:     v.GetInt("COMPLETION_RATE_BURST"),
		},
		Quiz: QuizConfig{
			MaxRetries:      v.GetInt("QUIZ_MAX_RETRIES"),
			Temperature:     v.GetFloat64("COMPLETION_TEMPERATURE"),
			TemperatureStep: v.GetFloat64("QUIZ_RETRY_TEMPERATURE_STEP"),
			MaxTokens:       v.GetInt("COMPLETION_MAX_TOKENS"),
			CallTimeout:     v.GetDuration("COMPLETION_TIMEOUT"),
			LockTTL:         v.GetDuration("GENERATION_LOCK_TTL"),
		},
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseDSN == "" {
		return nil, ErrMissingDatabaseDSN
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.Quiz.MaxRetries < 0 {
		cfg.Quiz.MaxRetries = 0
	}

	apiKey, err := completionKey(v, cfg)
	if err != nil {
		return nil, err
	}
	cfg.Completion.APIKey = apiKey

	return cfg, nil
}

func completionKey(v *viper.Viper, cfg *Config) (string, error) {
	fallback := "OPENROUTER_API_KEY"
	if cfg.Completion.Provider == "gemini" {
		fallback = "GEMINI_API_KEY"
	}
	if k := firstNonEmpty(v.GetString("COMPLETION_API_KEY"), v.GetString(fallback)); k != "" {
		return k, nil
	}

	encrypted := strings.TrimSpace(v.GetString("COMPLETION_API_KEY_ENCRYPTED"))
	if encrypted == "" {
		return "", nil
	}
	if err := InitCrypto(cfg.CryptoKey); err != nil {
		return "", fmt.Errorf("decrypt completion key: %w", err)
	}
	k, err := Decrypt(encrypted)
	if err != nil {
		return "", fmt.Errorf("decrypt completion key: %w", err)
	}
	return strings.TrimSpace(k), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

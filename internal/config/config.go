package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
}

type DatabaseConfig struct {
	Connection string
	LogLevel   string // "silent", "error", "warn", "info"
}

type AuthConfig struct {
	JwtSecret string
}

type AIConfig struct {
	LLMProvider    string // "gateway" or "ollama"
	LLMModel       string
	GatewayBaseURL string
	GatewayAPIKey  string
	OllamaBaseURL  string
	Temperature    float64
	TimeoutSeconds int
}

var (
	ErrMissingDatabase  = errors.New("DB_CONNECTION_STRING is not set")
	ErrMissingJwtSecret = errors.New("JWT_SECRET is not set")
	ErrMissingAIKey     = errors.New("AI_GATEWAY_API_KEY is not set")
)

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			LogLevel:   getEnv("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			JwtSecret: getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "gateway"),
			LLMModel:       getEnv("LLM_MODEL", "google/gemini-2.5-flash"),
			GatewayBaseURL: getEnv("AI_GATEWAY_URL", "https://ai.gateway.lovable.dev/v1"),
			GatewayAPIKey:  getEnv("AI_GATEWAY_API_KEY", ""),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Temperature:    getEnvAsFloat("LLM_TEMPERATURE", 0.3),
			TimeoutSeconds: getEnvAsInt("AI_TIMEOUT_SECONDS", 60),
		},
	}
}

// Validate reports the first missing setting the service cannot run without.
// The AI key is only required for the hosted gateway.
func (c *Config) Validate() error {
	if c.Database.Connection == "" {
		return ErrMissingDatabase
	}
	if c.Auth.JwtSecret == "" {
		return ErrMissingJwtSecret
	}
	if c.Ai.LLMProvider == "gateway" && c.Ai.GatewayAPIKey == "" {
		return ErrMissingAIKey
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey          string
	GeminiModel           string
	GeminiModelBackup     string
	UseLMStudio           bool
	LMStudioURL           string
	LMStudioModel         string
	SerperAPIKey          string
	GoogleFactCheckAPIKey string
	RedisUrl              string
	DbUrl                 string
	AdminToken            string
	PromptsPath           string
	HeuristicsPath        string
	Port                  string
}

func Load() (*Config, error) {
	godotenv.Load()

	useLMStudio := os.Getenv("USE_LMSTUDIO") == "true"

	return &Config{
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GeminiModel:           getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiModelBackup:     os.Getenv("GEMINI_MODEL_BACKUP"),
		UseLMStudio:           useLMStudio,
		LMStudioURL:           getEnvOrDefault("LMSTUDIO_URL", "http://localhost:1234"),
		LMStudioModel:         getEnvOrDefault("LMSTUDIO_MODEL", "local-model"),
		SerperAPIKey:          os.Getenv("SERPER_API_KEY"),
		GoogleFactCheckAPIKey: os.Getenv("GOOGLE_FACTCHECK_API_KEY"),
		RedisUrl:              os.Getenv("REDIS_URL"),
		DbUrl:                 os.Getenv("DB_URL"),
		AdminToken:            os.Getenv("ADMIN_TOKEN"),
		PromptsPath:           getEnvOrDefault("PROMPTS_PATH", "config/prompts.json"),
		HeuristicsPath:        getEnvOrDefault("HEURISTICS_PATH", "config/heuristics.json"),
		Port:                  getEnvOrDefault("PORT", "8080"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

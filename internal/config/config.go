package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	RedisURL             string
	Environment          string
	DefaultQuestionCount int
	RandomQuestionCount  bool
	SessionTTLMinutes    int
	EventTopic           string
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; env vars may come from the process.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		DefaultQuestionCount: getEnvInt("DEFAULT_QUESTION_COUNT", 6),
		RandomQuestionCount:  getEnvBool("RANDOM_QUESTION_COUNT", false),
		SessionTTLMinutes:    getEnvInt("SESSION_TTL_MINUTES", 120),
		EventTopic:           getEnv("EVENT_TOPIC", "assessment-events"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	AIDifficulty    string
	AIDepth         int
	FirstMover      string
	RandomSeed      int64
	KafkaBrokers    []string
	KafkaTopic      string
	AllowedOrigins  []string
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	UIMode          string
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Engine
	difficulty := strings.ToLower(GetEnv("AI_DIFFICULTY", "hard"))
	depth := GetEnvAsInt("AI_DEPTH", 0)
	firstMover := strings.ToLower(GetEnv("FIRST_MOVER", "random"))
	seed := int64(GetEnvAsInt("RANDOM_SEED", 0))

	// Analytics (empty broker list disables publishing)
	brokers := GetEnvAsList("KAFKA_BROKERS")
	topic := GetEnv("KAFKA_TOPIC", "connect4.events")

	// CORS: localhost for development plus CSV values
	allowedOrigins := append([]string{"http://localhost:5173"}, GetEnvAsList("ALLOWED_ORIGINS")...)

	ttlMin := GetEnvAsInt("SESSION_TTL_MINUTES", 60)
	intervalMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 10)

	AppConfig = &Config{
		Port:            port,
		AIDifficulty:    difficulty,
		AIDepth:         depth,
		FirstMover:      firstMover,
		RandomSeed:      seed,
		KafkaBrokers:    brokers,
		KafkaTopic:      topic,
		AllowedOrigins:  allowedOrigins,
		SessionTTL:      time.Duration(ttlMin) * time.Minute,
		CleanupInterval: time.Duration(intervalMin) * time.Minute,
		UIMode:          strings.ToLower(GetEnv("UI_MODE", "console")),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s: %s, using default: %v", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsList splits a comma separated variable, dropping blank entries.
func GetEnvAsList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string

	// Analysis settings, passed into the core as a frozen value
	MaxDocumentSize     int
	ConfidenceThreshold float64
	VoltageTolerance    float64
	CurrentSafetyMargin float64
	AnalysisTimeout     time.Duration
}

func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "specanalyzer"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),

		MaxDocumentSize:     getEnvInt("MAX_DOCUMENT_SIZE", 1024*1024),
		ConfidenceThreshold: getEnvFloat("CONFIDENCE_THRESHOLD", 0.6),
		VoltageTolerance:    getEnvFloat("VOLTAGE_TOLERANCE", 0.5),
		CurrentSafetyMargin: getEnvFloat("CURRENT_SAFETY_MARGIN", 0.1),
		AnalysisTimeout:     getEnvDuration("ANALYSIS_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	MetaAPIURL      string
	GoogleAdsAPIURL string
	GoogleCSVURL    string
	CRMAPIURL       string
	SinkURL         string
	SinkSecret      string
	SettingsPath    string
	Port            string
	LogLevel        string
	HTTPTimeout     time.Duration
	RetryAttempts   int
	MinLeads        int
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, using environment variables")
	}

	timeout, _ := time.ParseDuration(getEnv("HTTP_TIMEOUT", "30s"))
	retryAttempts, _ := strconv.Atoi(getEnv("RETRY_ATTEMPTS", "3"))
	minLeads, _ := strconv.Atoi(getEnv("MIN_LEADS_THRESHOLD", "5"))

	return &Config{
		MetaAPIURL:      getEnv("META_API_URL", ""),
		GoogleAdsAPIURL: getEnv("GOOGLE_ADS_API_URL", ""),
		GoogleCSVURL:    getEnv("GOOGLE_CSV_URL", ""),
		CRMAPIURL:       getEnv("CRM_API_URL", ""),
		SinkURL:         getEnv("SINK_URL", ""),
		SinkSecret:      getEnv("SINK_SECRET", "metricshub_dev_secret"),
		SettingsPath:    getEnv("SETTINGS_PATH", "settings.yaml"),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPTimeout:     timeout,
		RetryAttempts:   retryAttempts,
		MinLeads:        minLeads,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

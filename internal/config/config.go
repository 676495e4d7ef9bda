// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	NATS        NATSConfig
	Collect     CollectConfig
	Classifier  ClassifierConfig
	Geo         GeoConfig
	Analysis    AnalysisConfig
	Logging     LoggingConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// NATSConfig holds NATS configuration. An empty URL disables event
// publishing entirely.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
	EventsSubject  string
}

// CollectConfig holds data collection configuration
type CollectConfig struct {
	TwitterBearerToken string
	NewsAPIKey         string
	ForumEnabled       bool
	ForumSubreddits    []string
	UserAgent          string
	SpamPhrases        []string
	FetchTimeout       time.Duration
}

// ClassifierConfig holds sentiment inference service configuration
type ClassifierConfig struct {
	InferenceURL string
	APIKey       string
	Timeout      time.Duration
}

// GeoConfig holds reverse geocoding configuration
type GeoConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	TopicCount int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
			EventsSubject:  getEnv("NATS_EVENTS_SUBJECT", "risk.assessment"),
		},
		Collect: CollectConfig{
			TwitterBearerToken: getEnv("TWITTER_BEARER_TOKEN", ""),
			NewsAPIKey:         getEnv("NEWSAPI_KEY", ""),
			ForumEnabled:       getEnvAsBool("FORUM_ENABLED", true),
			ForumSubreddits:    getEnvAsSlice("FORUM_SUBREDDITS", []string{"all"}),
			UserAgent:          getEnv("COLLECT_USER_AGENT", "georisk/1.0"),
			SpamPhrases:        getEnvAsSlice("COLLECT_SPAM_PHRASES", []string{"giveaway", "win now", "buy now", "subscribe"}),
			FetchTimeout:       getEnvAsDuration("COLLECT_FETCH_TIMEOUT", 10*time.Second),
		},
		Classifier: ClassifierConfig{
			InferenceURL: getEnv("CLASSIFIER_URL", "http://localhost:8001"),
			APIKey:       getEnv("CLASSIFIER_API_KEY", ""),
			Timeout:      getEnvAsDuration("CLASSIFIER_TIMEOUT", 30*time.Second),
		},
		Geo: GeoConfig{
			UserAgent: getEnv("GEO_USER_AGENT", "georisk/1.0"),
			Timeout:   getEnvAsDuration("GEO_TIMEOUT", 10*time.Second),
		},
		Analysis: AnalysisConfig{
			TopicCount: getEnvAsInt("ANALYSIS_TOPIC_COUNT", 10),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Classifier.InferenceURL == "" {
		return fmt.Errorf("classifier inference URL must be set")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
